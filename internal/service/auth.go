package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/okuzmina/bookstand/internal/ledger"
	"github.com/okuzmina/bookstand/internal/models"
	"github.com/okuzmina/bookstand/internal/store"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidInput = errors.New("name and email are required")
)

// AuthService handles registration and the credential-free email login
// the storefront uses. There is deliberately no password handling.
type AuthService struct {
	store  *store.Store
	ledger *ledger.Ledger
}

func NewAuthService(s *store.Store, l *ledger.Ledger) *AuthService {
	return &AuthService{store: s, ledger: l}
}

// Register creates an account with a fresh stable id. The email must
// not already resolve to another account.
func (a *AuthService) Register(name, email string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return models.User{}, ErrInvalidInput
	}
	if _, ok := a.store.GetUserByEmail(email); ok {
		return models.User{}, ErrEmailTaken
	}
	user := models.User{ID: uuid.NewString(), Name: name, Email: email}
	if err := a.store.SaveUser(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login resolves an account by email match alone.
func (a *AuthService) Login(email string) (models.User, error) {
	user, ok := a.store.GetUserByEmail(strings.TrimSpace(email))
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (a *AuthService) GetUser(id string) (models.User, error) {
	user, ok := a.store.GetUserByID(id)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// DeleteAccount removes the user record along with their cart and every
// reservation they hold.
func (a *AuthService) DeleteAccount(id string) error {
	if _, ok := a.store.GetUserByID(id); !ok {
		return ErrUserNotFound
	}
	a.ledger.CancelAll(id)
	if err := a.store.DeleteCart(id); err != nil {
		return err
	}
	return a.store.DeleteUser(id)
}
