package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/okuzmina/bookstand/internal/models"
)

var ErrBookNotFound = errors.New("book not found")

// Catalog is the read-only book reference data. It is loaded once at
// startup and never mutated; reservation state lives in the ledger.
type Catalog struct {
	books []models.Book
	byID  map[int]models.Book
}

func New(books []models.Book) *Catalog {
	byID := make(map[int]models.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	return &Catalog{books: books, byID: byID}
}

// Default returns a catalog over the built-in book list.
func Default() *Catalog {
	return New(seedBooks)
}

func (c *Catalog) Get(id int) (models.Book, error) {
	b, ok := c.byID[id]
	if !ok {
		return models.Book{}, ErrBookNotFound
	}
	return b, nil
}

func (c *Catalog) List() []models.Book {
	out := make([]models.Book, len(c.books))
	copy(out, c.books)
	return out
}

// Search filters the catalog by a case-insensitive substring over title,
// author and description, and optionally by exact author name.
func (c *Catalog) Search(q, author string) []models.Book {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []models.Book{}
	for _, b := range c.books {
		if author != "" && b.Author != author {
			continue
		}
		if q != "" && !matches(b, q) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matches(b models.Book, q string) bool {
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Description), q)
}

// Authors returns the distinct author names, sorted.
func (c *Catalog) Authors() []string {
	seen := make(map[string]bool, len(c.books))
	out := []string{}
	for _, b := range c.books {
		if b.Author == "" || seen[b.Author] {
			continue
		}
		seen[b.Author] = true
		out = append(out, b.Author)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Size() int {
	return len(c.books)
}
