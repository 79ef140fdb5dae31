package store

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/okuzmina/bookstand/internal/models"
)

// All user records live in one JSON blob under this key, keyed by user
// id. Matches the persisted layout of the original storefront.
const usersKey = "users"

// GetUsers returns every user record keyed by id. Parse failures
// degrade to an empty map, logged so the loss is visible.
func (s *Store) GetUsers() map[string]models.User {
	raw, ok := s.get(usersKey)
	if !ok {
		return map[string]models.User{}
	}
	users := map[string]models.User{}
	if err := json.Unmarshal(raw, &users); err != nil {
		log.Warn().Err(err).Msg("user blob corrupted, treating as empty")
		return map[string]models.User{}
	}
	return users
}

// SaveUser inserts or updates one user record.
func (s *Store) SaveUser(user models.User) error {
	users := s.GetUsers()
	users[user.ID] = user
	return s.writeUsers(users)
}

func (s *Store) GetUserByID(id string) (models.User, bool) {
	u, ok := s.GetUsers()[id]
	return u, ok
}

// GetUserByEmail scans for an email match. Email is an attribute here,
// not the key: changing it never breaks reservation linkage.
func (s *Store) GetUserByEmail(email string) (models.User, bool) {
	for _, u := range s.GetUsers() {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) DeleteUser(id string) error {
	users := s.GetUsers()
	delete(users, id)
	return s.writeUsers(users)
}

func (s *Store) writeUsers(users map[string]models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return s.put(usersKey, raw)
}
