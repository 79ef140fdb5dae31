package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okuzmina/bookstand/internal/api"
	"github.com/okuzmina/bookstand/internal/catalog"
	"github.com/okuzmina/bookstand/internal/ledger"
	"github.com/okuzmina/bookstand/internal/models"
	"github.com/okuzmina/bookstand/internal/service"
	"github.com/okuzmina/bookstand/internal/store"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat := catalog.New([]models.Book{
		{ID: 1, Title: "First", Author: "Author A", Quantity: 3, Description: "about gardening"},
		{ID: 2, Title: "Second", Author: "Author B", Quantity: 5},
	})
	led := ledger.New(cat)
	auth := service.NewAuthService(st, led)
	carts := service.NewCartService(st)

	return api.NewRouter(api.NewHandler(cat, led, auth, carts))
}

func doJSON(t *testing.T, r *mux.Router, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListBooks(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := decode[[]models.BookView](t, w)
	require.Len(t, views, 2)
	assert.Equal(t, 3, views[0].Available)

	w = doJSON(t, r, http.MethodGet, "/api/v1/books?q=gardening", nil)
	views = decode[[]models.BookView](t, w)
	require.Len(t, views, 1)
	assert.Equal(t, "First", views[0].Title)

	w = doJSON(t, r, http.MethodGet, "/api/v1/books?author=Author+B", nil)
	views = decode[[]models.BookView](t, w)
	require.Len(t, views, 1)
	assert.Equal(t, 2, views[0].ID)
}

func TestGetBook(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/books/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[models.BookView](t, w)
	assert.Equal(t, "First", view.Title)
	assert.Equal(t, 3, view.Available)

	w = doJSON(t, r, http.MethodGet, "/api/v1/books/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{Name: "Alice", Email: "alice@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	user := decode[models.User](t, w)
	assert.NotEmpty(t, user.ID)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{Name: "Clone", Email: "alice@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: "alice@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, decode[models.User](t, w).ID)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/users/"+user.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/users/"+user.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: "alice@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationFlow(t *testing.T) {
	r := newTestRouter(t)

	// userA takes 2 of 3 copies.
	w := doJSON(t, r, http.MethodPost, "/api/v1/reservations", models.ReserveRequest{BookID: 1, UserID: "userA", Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code)
	avail := decode[models.AvailabilityResponse](t, w)
	assert.Equal(t, 1, avail.Available)
	assert.Equal(t, 2, avail.TotalReserved)

	// userB wants 2 but only 1 is left; the body carries the range.
	w = doJSON(t, r, http.MethodPost, "/api/v1/reservations", models.ReserveRequest{BookID: 1, UserID: "userB", Quantity: 2})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	rangeBody := decode[map[string]any](t, w)
	assert.Equal(t, float64(1), rangeBody["min"])
	assert.Equal(t, float64(1), rangeBody["max"])

	// userA cannot double-book.
	w = doJSON(t, r, http.MethodPost, "/api/v1/reservations", models.ReserveRequest{BookID: 1, UserID: "userA", Quantity: 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	// userB takes the last copy.
	w = doJSON(t, r, http.MethodPost, "/api/v1/reservations", models.ReserveRequest{BookID: 1, UserID: "userB", Quantity: 1})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, decode[models.AvailabilityResponse](t, w).Available)

	// userA shrinks to 1 copy.
	w = doJSON(t, r, http.MethodPut, "/api/v1/reservations/1", models.UpdateReservationRequest{UserID: "userA", Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[models.AvailabilityResponse](t, w).Available)

	// Updating without a reservation reports 404.
	w = doJSON(t, r, http.MethodPut, "/api/v1/reservations/2", models.UpdateReservationRequest{UserID: "userA", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// userA's view of their shelf.
	w = doJSON(t, r, http.MethodGet, "/api/v1/users/userA/reservations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]models.UserReservation](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].ReservedQuantity)

	// Cancel is idempotent.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/reservations/1?user_id=userA", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/v1/reservations/1?user_id=userA", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/books/1/availability", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[models.AvailabilityResponse](t, w).Available)
}

func TestReservationValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/reservations", models.ReserveRequest{BookID: 42, UserID: "userA", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/reservations", models.ReserveRequest{BookID: 1, Quantity: 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString("{broken"))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestCartFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/users/u1/cart", models.CartItem{BookID: 1})
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[[]models.CartItem](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "First", items[0].Title)
	assert.Equal(t, 1, items[0].Quantity)

	w = doJSON(t, r, http.MethodPost, "/api/v1/users/u1/cart", models.CartItem{BookID: 42})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/users/u1/cart/1", map[string]int{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)
	items = decode[[]models.CartItem](t, w)
	assert.Equal(t, 4, items[0].Quantity)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/users/u1/cart/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.CartItem](t, w))

	w = doJSON(t, r, http.MethodDelete, "/api/v1/users/u1/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAvailabilityUnknownBook(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/books/%d/availability", 42), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
