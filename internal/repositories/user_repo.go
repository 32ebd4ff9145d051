package repositories

import (
	"fmt"

	"jobmatch/internal/models"
	"jobmatch/internal/storage"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

// StoreUserRepository keeps the user collection as one serialized document in
// the key-value store. Every mutation rewrites the whole collection.
type StoreUserRepository struct {
	store storage.Store
}

// NewStoreUserRepository creates a new instance of StoreUserRepository.
func NewStoreUserRepository(store storage.Store) *StoreUserRepository {
	return &StoreUserRepository{store: store}
}

// Create appends a new user to the collection, stamping id and creation time
// when the caller left them empty.
func (r *StoreUserRepository) Create(user *models.User) error {
	users, err := storage.Read(r.store, storage.KeyUsers, []models.User{})
	if err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = newID("u_")
	}
	if user.CreatedAt == "" {
		user.CreatedAt = timestamp()
	}
	users = append(users, *user)
	if err := storage.Write(r.store, storage.KeyUsers, users); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by exact email match. Matching is
// case-sensitive by product decision.
func (r *StoreUserRepository) GetByEmail(email string) (*models.User, error) {
	users, err := storage.Read(r.store, storage.KeyUsers, []models.User{})
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			user := users[i]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

// GetByID retrieves a user by id.
func (r *StoreUserRepository) GetByID(id string) (*models.User, error) {
	users, err := storage.Read(r.store, storage.KeyUsers, []models.User{})
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
}
