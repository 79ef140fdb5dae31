package store

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/okuzmina/bookstand/internal/models"
)

// Carts persist per user under their own key, so logging out and back
// in restores the cart.
func cartKey(userID string) string {
	return "cart_" + userID
}

// GetCart returns a user's cart lines, empty on any read failure.
func (s *Store) GetCart(userID string) []models.CartItem {
	raw, ok := s.get(cartKey(userID))
	if !ok {
		return []models.CartItem{}
	}
	items := []models.CartItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("cart blob corrupted, treating as empty")
		return []models.CartItem{}
	}
	return items
}

func (s *Store) SaveCart(userID string, items []models.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return s.put(cartKey(userID), raw)
}

func (s *Store) DeleteCart(userID string) error {
	return s.delete(cartKey(userID))
}
