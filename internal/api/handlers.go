package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/okuzmina/bookstand/internal/catalog"
	"github.com/okuzmina/bookstand/internal/ledger"
	"github.com/okuzmina/bookstand/internal/models"
	"github.com/okuzmina/bookstand/internal/service"
	"github.com/okuzmina/bookstand/internal/store"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstand_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookstand_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})

	reservationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstand_reservation_outcomes_total",
		Help: "Reservation attempts by outcome",
	}, []string{"operation", "outcome"})
)

type Handler struct {
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	auth    *service.AuthService
	carts   *service.CartService
}

func NewHandler(c *catalog.Catalog, l *ledger.Ledger, a *service.AuthService, carts *service.CartService) *Handler {
	return &Handler{catalog: c, ledger: l, auth: a, carts: carts}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "GET", "/health")
}

// --- catalog ---

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	author := r.URL.Query().Get("author")

	books := h.catalog.Search(q, author)
	views := make([]models.BookView, 0, len(books))
	for _, b := range books {
		views = append(views, h.ledger.View(b))
	}
	respondWithJSON(w, http.StatusOK, views, "GET", "/books")
}

func (h *Handler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Authors(), "GET", "/books/authors")
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid book id", "GET", "/books/{id}")
		return
	}
	book, err := h.catalog.Get(id)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Book not found", "GET", "/books/{id}")
		return
	}
	respondWithJSON(w, http.StatusOK, h.ledger.View(book), "GET", "/books/{id}")
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid book id", "GET", "/books/{id}/availability")
		return
	}
	available, err := h.ledger.AvailableQuantity(id)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Book not found", "GET", "/books/{id}/availability")
		return
	}
	respondWithJSON(w, http.StatusOK, models.AvailabilityResponse{
		BookID:        id,
		Available:     available,
		TotalReserved: h.ledger.TotalReserved(id),
	}, "GET", "/books/{id}/availability")
}

// --- auth ---

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/auth/register")
		return
	}
	user, err := h.auth.Register(req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "Email already registered", "POST", "/auth/register")
		case errors.Is(err, service.ErrInvalidInput):
			respondWithError(w, http.StatusUnprocessableEntity, "Name and email are required", "POST", "/auth/register")
		case errors.Is(err, store.ErrStorage):
			respondWithError(w, http.StatusInternalServerError, "Storage failure", "POST", "/auth/register")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error(), "POST", "/auth/register")
		}
		return
	}
	log.Info().Str("user_id", user.ID).Msg("user registered")
	respondWithJSON(w, http.StatusCreated, user, "POST", "/auth/register")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/auth/login")
		return
	}
	user, err := h.auth.Login(req.Email)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found", "POST", "/auth/login")
		return
	}
	respondWithJSON(w, http.StatusOK, user, "POST", "/auth/login")
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUser(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found", "GET", "/users/{id}")
		return
	}
	respondWithJSON(w, http.StatusOK, user, "GET", "/users/{id}")
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.auth.DeleteAccount(id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondWithError(w, http.StatusNotFound, "User not found", "DELETE", "/users/{id}")
		default:
			respondWithError(w, http.StatusInternalServerError, "Storage failure", "DELETE", "/users/{id}")
		}
		return
	}
	log.Info().Str("user_id", id).Msg("account deleted")
	respondWithStatus(w, http.StatusNoContent, "DELETE", "/users/{id}")
}

// --- reservations ---

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/reservations"))
	defer timer.ObserveDuration()

	var req models.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/reservations")
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusUnprocessableEntity, "user_id is required", "POST", "/reservations")
		return
	}

	if err := h.ledger.Reserve(req.BookID, req.UserID, req.Quantity); err != nil {
		h.respondReservationError(w, err, "reserve", "POST", "/reservations")
		return
	}

	reservationOutcomes.WithLabelValues("reserve", "ok").Inc()
	log.Info().Int("book_id", req.BookID).Str("user_id", req.UserID).Int("quantity", req.Quantity).Msg("reservation created")
	respondWithJSON(w, http.StatusCreated, models.AvailabilityResponse{
		BookID:        req.BookID,
		Available:     mustAvailable(h.ledger, req.BookID),
		TotalReserved: h.ledger.TotalReserved(req.BookID),
	}, "POST", "/reservations")
}

func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.Atoi(mux.Vars(r)["bookId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid book id", "PUT", "/reservations/{bookId}")
		return
	}
	var req models.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body", "PUT", "/reservations/{bookId}")
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusUnprocessableEntity, "user_id is required", "PUT", "/reservations/{bookId}")
		return
	}

	if err := h.ledger.UpdateQuantity(bookID, req.UserID, req.Quantity); err != nil {
		h.respondReservationError(w, err, "update", "PUT", "/reservations/{bookId}")
		return
	}

	reservationOutcomes.WithLabelValues("update", "ok").Inc()
	respondWithJSON(w, http.StatusOK, models.AvailabilityResponse{
		BookID:        bookID,
		Available:     mustAvailable(h.ledger, bookID),
		TotalReserved: h.ledger.TotalReserved(bookID),
	}, "PUT", "/reservations/{bookId}")
}

// CancelReservation is idempotent: cancelling a reservation that does
// not exist still returns 204.
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.Atoi(mux.Vars(r)["bookId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid book id", "DELETE", "/reservations/{bookId}")
		return
	}
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusUnprocessableEntity, "user_id is required", "DELETE", "/reservations/{bookId}")
		return
	}

	h.ledger.Cancel(bookID, userID)
	reservationOutcomes.WithLabelValues("cancel", "ok").Inc()
	respondWithStatus(w, http.StatusNoContent, "DELETE", "/reservations/{bookId}")
}

func (h *Handler) ListUserReservations(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	respondWithJSON(w, http.StatusOK, h.ledger.ReservationsOf(userID), "GET", "/users/{id}/reservations")
}

// --- cart ---

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	respondWithJSON(w, http.StatusOK, h.carts.Items(userID), "GET", "/users/{id}/cart")
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body", "POST", "/users/{id}/cart")
		return
	}
	book, err := h.catalog.Get(item.BookID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Book not found", "POST", "/users/{id}/cart")
		return
	}
	item.Title = book.Title

	items, err := h.carts.AddToCart(userID, item)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Storage failure", "POST", "/users/{id}/cart")
		return
	}
	respondWithJSON(w, http.StatusOK, items, "POST", "/users/{id}/cart")
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	bookID, err := strconv.Atoi(mux.Vars(r)["bookId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid book id", "PUT", "/users/{id}/cart/{bookId}")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body", "PUT", "/users/{id}/cart/{bookId}")
		return
	}
	items, err := h.carts.UpdateQuantity(userID, bookID, req.Quantity)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Storage failure", "PUT", "/users/{id}/cart/{bookId}")
		return
	}
	respondWithJSON(w, http.StatusOK, items, "PUT", "/users/{id}/cart/{bookId}")
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	bookID, err := strconv.Atoi(mux.Vars(r)["bookId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid book id", "DELETE", "/users/{id}/cart/{bookId}")
		return
	}
	items, err := h.carts.RemoveFromCart(userID, bookID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Storage failure", "DELETE", "/users/{id}/cart/{bookId}")
		return
	}
	respondWithJSON(w, http.StatusOK, items, "DELETE", "/users/{id}/cart/{bookId}")
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if err := h.carts.ClearCart(userID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Storage failure", "DELETE", "/users/{id}/cart")
		return
	}
	respondWithStatus(w, http.StatusNoContent, "DELETE", "/users/{id}/cart")
}

// --- helpers ---

// respondReservationError maps ledger failures onto HTTP. QuantityError
// carries the valid range so the client can render it without parsing
// the message.
func (h *Handler) respondReservationError(w http.ResponseWriter, err error, operation, method, endpoint string) {
	var qerr *ledger.QuantityError
	switch {
	case errors.As(err, &qerr):
		reservationOutcomes.WithLabelValues(operation, "invalid_quantity").Inc()
		respondWithJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": qerr.Error(),
			"min":   qerr.Min,
			"max":   qerr.Max,
		}, method, endpoint)
	case errors.Is(err, ledger.ErrDuplicateReservation):
		reservationOutcomes.WithLabelValues(operation, "duplicate").Inc()
		respondWithError(w, http.StatusConflict, "Book already reserved by this user", method, endpoint)
	case errors.Is(err, ledger.ErrNoReservation):
		reservationOutcomes.WithLabelValues(operation, "no_reservation").Inc()
		respondWithError(w, http.StatusNotFound, "No reservation held by this user", method, endpoint)
	case errors.Is(err, catalog.ErrBookNotFound):
		reservationOutcomes.WithLabelValues(operation, "book_not_found").Inc()
		respondWithError(w, http.StatusNotFound, "Book not found", method, endpoint)
	default:
		reservationOutcomes.WithLabelValues(operation, "error").Inc()
		respondWithError(w, http.StatusInternalServerError, err.Error(), method, endpoint)
	}
}

// mustAvailable reads availability for a book the ledger just accepted,
// so the catalog lookup cannot fail.
func mustAvailable(l *ledger.Ledger, bookID int) int {
	available, _ := l.AvailableQuantity(bookID)
	return available
}

func respondWithJSON(w http.ResponseWriter, code int, payload any, method, endpoint string) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	respondWithJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}

func respondWithStatus(w http.ResponseWriter, code int, method, endpoint string) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.WriteHeader(code)
}
