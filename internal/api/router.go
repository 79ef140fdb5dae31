package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. Shared between cmd/api and the handler
// tests so both exercise the same routing table.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()

	apiV1.HandleFunc("/books", h.ListBooks).Methods("GET")
	apiV1.HandleFunc("/books/authors", h.ListAuthors).Methods("GET")
	apiV1.HandleFunc("/books/{id:[0-9]+}", h.GetBook).Methods("GET")
	apiV1.HandleFunc("/books/{id:[0-9]+}/availability", h.GetAvailability).Methods("GET")

	apiV1.HandleFunc("/auth/register", h.Register).Methods("POST")
	apiV1.HandleFunc("/auth/login", h.Login).Methods("POST")

	apiV1.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	apiV1.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")
	apiV1.HandleFunc("/users/{id}/reservations", h.ListUserReservations).Methods("GET")

	apiV1.HandleFunc("/reservations", h.CreateReservation).Methods("POST")
	apiV1.HandleFunc("/reservations/{bookId:[0-9]+}", h.UpdateReservation).Methods("PUT")
	apiV1.HandleFunc("/reservations/{bookId:[0-9]+}", h.CancelReservation).Methods("DELETE")

	apiV1.HandleFunc("/users/{id}/cart", h.GetCart).Methods("GET")
	apiV1.HandleFunc("/users/{id}/cart", h.AddToCart).Methods("POST")
	apiV1.HandleFunc("/users/{id}/cart", h.ClearCart).Methods("DELETE")
	apiV1.HandleFunc("/users/{id}/cart/{bookId:[0-9]+}", h.UpdateCartItem).Methods("PUT")
	apiV1.HandleFunc("/users/{id}/cart/{bookId:[0-9]+}", h.RemoveCartItem).Methods("DELETE")

	return r
}
