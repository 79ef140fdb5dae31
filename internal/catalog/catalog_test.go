package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okuzmina/bookstand/internal/catalog"
	"github.com/okuzmina/bookstand/internal/models"
)

func newTestCatalog() *catalog.Catalog {
	return catalog.New([]models.Book{
		{ID: 1, Title: "The Idiot", Author: "Fyodor Dostoevsky", Quantity: 2, Description: "A saintly prince returns to Petersburg society."},
		{ID: 2, Title: "Oblomov", Author: "Ivan Goncharov", Quantity: 3, Description: "A nobleman who cannot get off his couch."},
		{ID: 3, Title: "Demons", Author: "Fyodor Dostoevsky", Quantity: 1, Description: "Radical politics consume a provincial town."},
	})
}

func TestGet(t *testing.T) {
	c := newTestCatalog()

	b, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Oblomov", b.Title)

	_, err = c.Get(42)
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
}

func TestSearch(t *testing.T) {
	c := newTestCatalog()

	tests := []struct {
		name    string
		q       string
		author  string
		wantIDs []int
	}{
		{name: "empty_returns_all", wantIDs: []int{1, 2, 3}},
		{name: "title_substring", q: "oblo", wantIDs: []int{2}},
		{name: "case_insensitive", q: "IDIOT", wantIDs: []int{1}},
		{name: "description_match", q: "couch", wantIDs: []int{2}},
		{name: "author_substring", q: "dosto", wantIDs: []int{1, 3}},
		{name: "author_filter", author: "Fyodor Dostoevsky", wantIDs: []int{1, 3}},
		{name: "query_plus_author", q: "politics", author: "Fyodor Dostoevsky", wantIDs: []int{3}},
		{name: "no_match", q: "zzz", wantIDs: []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Search(tc.q, tc.author)
			ids := make([]int, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestAuthors(t *testing.T) {
	c := newTestCatalog()

	assert.Equal(t, []string{"Fyodor Dostoevsky", "Ivan Goncharov"}, c.Authors())
}

func TestDefaultCatalogIsWellFormed(t *testing.T) {
	c := catalog.Default()

	require.Greater(t, c.Size(), 0)
	seen := map[int]bool{}
	for _, b := range c.List() {
		assert.False(t, seen[b.ID], "duplicate book id %d", b.ID)
		seen[b.ID] = true
		assert.NotEmpty(t, b.Title)
		assert.GreaterOrEqual(t, b.Quantity, 0)
	}
}
