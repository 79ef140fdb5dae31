package models

// Book is an immutable catalog entry. Quantity is the total number of
// copies the store owns, not current availability.
type Book struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Quantity    int     `json:"quantity"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	CoverURL    string  `json:"cover_url"`
}

// User is a registered account. ID is the stable key reservations are
// linked to; Email is a mutable attribute used only for login lookup.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReservationRecord aggregates all reservations for one book.
// TotalReserved always equals the sum of Quantities.
type ReservationRecord struct {
	BookID        int            `json:"book_id"`
	ReservedBy    []string       `json:"reserved_by"`
	Quantities    map[string]int `json:"quantities"`
	TotalReserved int            `json:"total_reserved"`
}

// BookView is a catalog entry annotated with live reservation state.
type BookView struct {
	Book
	Available     int `json:"available"`
	TotalReserved int `json:"total_reserved"`
}

// UserReservation is one user's reservation joined with catalog data.
type UserReservation struct {
	Book
	ReservedQuantity int `json:"reserved_quantity"`
	TotalReserved    int `json:"total_reserved"`
}

// CartItem is one line of a user's shopping cart.
type CartItem struct {
	BookID   int    `json:"book_id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// ReserveRequest is the payload for creating a reservation.
type ReserveRequest struct {
	BookID   int    `json:"book_id"`
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity"`
}

// UpdateReservationRequest changes the quantity of an existing reservation.
type UpdateReservationRequest struct {
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest carries the email for the credential-free login.
type LoginRequest struct {
	Email string `json:"email"`
}

// AvailabilityResponse reports live availability for one book.
type AvailabilityResponse struct {
	BookID        int `json:"book_id"`
	Available     int `json:"available"`
	TotalReserved int `json:"total_reserved"`
}
