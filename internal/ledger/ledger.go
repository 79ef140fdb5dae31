package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/okuzmina/bookstand/internal/catalog"
	"github.com/okuzmina/bookstand/internal/models"
)

var (
	ErrDuplicateReservation = errors.New("book already reserved by this user")
	ErrNoReservation        = errors.New("no reservation held by this user")
)

// QuantityError reports a requested quantity outside the range the
// caller may currently reserve.
type QuantityError struct {
	Min int
	Max int
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("quantity must be between %d and %d", e.Min, e.Max)
}

// Ledger tracks per-book reservation state: who holds a reservation and
// in what quantity. It is the sole writer of its records and is
// deliberately process-local; a restart starts from an empty ledger.
//
// Every mutation validates fully before touching state, so a failed
// call never leaves a partial update behind.
type Ledger struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	records map[int]*models.ReservationRecord
	order   []int // record creation order, for stable iteration
}

func New(c *catalog.Catalog) *Ledger {
	return &Ledger{
		catalog: c,
		records: make(map[int]*models.ReservationRecord),
	}
}

// Reserve books quantity copies of a book for a user.
//
// Fails with *QuantityError when quantity is outside [1, available],
// where available is what all other reservations leave over, and with
// ErrDuplicateReservation when the user already holds this book.
func (l *Ledger) Reserve(bookID int, userID string, quantity int) error {
	book, err := l.catalog.Get(bookID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.records[bookID]

	available := book.Quantity
	if rec != nil {
		available -= rec.TotalReserved
	}
	if quantity < 1 || quantity > available {
		return &QuantityError{Min: 1, Max: available}
	}

	if rec != nil {
		if _, held := rec.Quantities[userID]; held {
			return ErrDuplicateReservation
		}
	}

	if rec == nil {
		rec = &models.ReservationRecord{
			BookID:     bookID,
			Quantities: make(map[string]int),
		}
		l.records[bookID] = rec
		l.order = append(l.order, bookID)
	}
	rec.ReservedBy = append(rec.ReservedBy, userID)
	rec.Quantities[userID] = quantity
	rec.TotalReserved += quantity
	return nil
}

// UpdateQuantity changes an existing reservation to quantity copies.
// The user may take up to whatever the other holders leave available.
// Fails with ErrNoReservation when the user holds nothing to update.
func (l *Ledger) UpdateQuantity(bookID int, userID string, quantity int) error {
	book, err := l.catalog.Get(bookID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.records[bookID]
	if rec == nil {
		return ErrNoReservation
	}
	old, held := rec.Quantities[userID]
	if !held {
		return ErrNoReservation
	}

	othersTotal := rec.TotalReserved - old
	available := book.Quantity - othersTotal
	if quantity < 1 || quantity > available {
		return &QuantityError{Min: 1, Max: available}
	}

	rec.Quantities[userID] = quantity
	rec.TotalReserved = othersTotal + quantity
	return nil
}

// Cancel releases a user's reservation. When the last holder leaves,
// the whole record is deleted rather than zeroed. Cancelling a
// reservation that does not exist is a no-op.
func (l *Ledger) Cancel(bookID int, userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelLocked(bookID, userID)
}

// CancelAll releases every reservation held by a user, e.g. when the
// account is deleted.
func (l *Ledger) CancelAll(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]int, len(l.order))
	copy(ids, l.order)
	for _, bookID := range ids {
		l.cancelLocked(bookID, userID)
	}
}

func (l *Ledger) cancelLocked(bookID int, userID string) {
	rec := l.records[bookID]
	if rec == nil {
		return
	}
	qty, held := rec.Quantities[userID]
	if !held {
		return
	}

	delete(rec.Quantities, userID)
	rec.TotalReserved -= qty
	for i, id := range rec.ReservedBy {
		if id == userID {
			rec.ReservedBy = append(rec.ReservedBy[:i], rec.ReservedBy[i+1:]...)
			break
		}
	}

	if len(rec.ReservedBy) == 0 {
		delete(l.records, bookID)
		for i, id := range l.order {
			if id == bookID {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// AvailableQuantity is the authoritative availability accessor: total
// owned copies minus everything currently reserved. Never negative.
func (l *Ledger) AvailableQuantity(bookID int) (int, error) {
	book, err := l.catalog.Get(bookID)
	if err != nil {
		return 0, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if rec := l.records[bookID]; rec != nil {
		return book.Quantity - rec.TotalReserved, nil
	}
	return book.Quantity, nil
}

// TotalReserved returns the aggregate reserved count for a book, 0 when
// nobody holds it.
func (l *Ledger) TotalReserved(bookID int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if rec := l.records[bookID]; rec != nil {
		return rec.TotalReserved
	}
	return 0
}

func (l *Ledger) IsReservedBy(bookID int, userID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec := l.records[bookID]
	if rec == nil {
		return false
	}
	_, held := rec.Quantities[userID]
	return held
}

// ReservationsOf returns the user's reservations joined with catalog
// data, in record creation order.
func (l *Ledger) ReservationsOf(userID string) []models.UserReservation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []models.UserReservation{}
	for _, bookID := range l.order {
		rec := l.records[bookID]
		qty, held := rec.Quantities[userID]
		if !held {
			continue
		}
		book, err := l.catalog.Get(bookID)
		if err != nil {
			continue
		}
		out = append(out, models.UserReservation{
			Book:             book,
			ReservedQuantity: qty,
			TotalReserved:    rec.TotalReserved,
		})
	}
	return out
}

// View annotates one catalog book with live reservation state.
func (l *Ledger) View(book models.Book) models.BookView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := 0
	if rec := l.records[book.ID]; rec != nil {
		total = rec.TotalReserved
	}
	return models.BookView{
		Book:          book,
		Available:     book.Quantity - total,
		TotalReserved: total,
	}
}
