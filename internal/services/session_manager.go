package services

import (
	"errors"

	"jobmatch/internal/models"
	"jobmatch/internal/repositories"
	"jobmatch/internal/storage"
)

// UserLookup is the slice of the user repository the session manager needs to
// resolve a session to a live user.
type UserLookup interface {
	GetByID(id string) (*models.User, error)
}

// SessionManager tracks at most one logged-in identity, persisted as a
// singleton under the session key. It holds only a user id; the durable user
// record stays in the user collection.
type SessionManager struct {
	store storage.Store
	users UserLookup
}

// NewSessionManager creates a new SessionManager.
func NewSessionManager(store storage.Store, users UserLookup) *SessionManager {
	return &SessionManager{store: store, users: users}
}

// SetActive makes userID the current identity, overwriting any prior session.
func (m *SessionManager) SetActive(userID string) error {
	return storage.Write(m.store, storage.KeySession, &models.Session{UserID: userID})
}

// Clear logs out. Clearing an already-absent session is a no-op.
func (m *SessionManager) Clear() error {
	return storage.Write[*models.Session](m.store, storage.KeySession, nil)
}

// Current resolves the session to a live user. A missing session, or a
// session pointing at a user that no longer exists, reads as logged out
// rather than an error.
func (m *SessionManager) Current() (*models.User, error) {
	session, err := storage.Read[*models.Session](m.store, storage.KeySession, nil)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	user, err := m.users.GetByID(session.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
