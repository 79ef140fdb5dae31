package service

import (
	"github.com/okuzmina/bookstand/internal/models"
	"github.com/okuzmina/bookstand/internal/store"
)

// CartService keeps one persisted cart per user.
type CartService struct {
	store *store.Store
}

func NewCartService(s *store.Store) *CartService {
	return &CartService{store: s}
}

func (c *CartService) Items(userID string) []models.CartItem {
	return c.store.GetCart(userID)
}

// AddToCart bumps the quantity of an existing line or appends a new one
// with quantity 1.
func (c *CartService) AddToCart(userID string, item models.CartItem) ([]models.CartItem, error) {
	items := c.store.GetCart(userID)
	found := false
	for i := range items {
		if items[i].BookID == item.BookID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		items = append(items, item)
	}
	if err := c.store.SaveCart(userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets a line's quantity; zero or less drops the line.
func (c *CartService) UpdateQuantity(userID string, bookID, quantity int) ([]models.CartItem, error) {
	items := c.store.GetCart(userID)
	out := items[:0]
	for _, it := range items {
		if it.BookID == bookID {
			it.Quantity = quantity
		}
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	if err := c.store.SaveCart(userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CartService) RemoveFromCart(userID string, bookID int) ([]models.CartItem, error) {
	items := c.store.GetCart(userID)
	out := items[:0]
	for _, it := range items {
		if it.BookID != bookID {
			out = append(out, it)
		}
	}
	if err := c.store.SaveCart(userID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CartService) ClearCart(userID string) error {
	return c.store.DeleteCart(userID)
}

// TotalItems is the quantity sum across all lines.
func (c *CartService) TotalItems(userID string) int {
	total := 0
	for _, it := range c.store.GetCart(userID) {
		total += it.Quantity
	}
	return total
}
