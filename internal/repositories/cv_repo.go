package repositories

import (
	"fmt"
	"sort"
	"strings"

	"jobmatch/internal/models"
	"jobmatch/internal/storage"

	"github.com/samber/lo"
)

// CVRepository defines the interface for CV data access.
type CVRepository interface {
	ListByUser(userID string) ([]models.CV, error)
	Create(cv *models.CV) error
	Update(id string, patch models.CVPatch) (*models.CV, error)
}

// StoreCVRepository keeps the CV collection as one serialized document in the
// key-value store.
type StoreCVRepository struct {
	store storage.Store
}

// NewStoreCVRepository creates a new instance of StoreCVRepository.
func NewStoreCVRepository(store storage.Store) *StoreCVRepository {
	return &StoreCVRepository{store: store}
}

// ListByUser returns the user's CVs, most recently updated first.
func (r *StoreCVRepository) ListByUser(userID string) ([]models.CV, error) {
	cvs, err := storage.Read(r.store, storage.KeyCVs, []models.CV{})
	if err != nil {
		return nil, err
	}
	owned := lo.Filter(cvs, func(cv models.CV, _ int) bool {
		return cv.UserID == userID
	})
	sort.SliceStable(owned, func(i, j int) bool {
		return strings.Compare(owned[i].UpdatedAt, owned[j].UpdatedAt) > 0
	})
	return owned, nil
}

// Create appends a new CV, stamping id and update time when the caller left
// them empty. The caller is responsible for setting UserID to an existing
// user; ownership is not re-validated on later reads.
func (r *StoreCVRepository) Create(cv *models.CV) error {
	cvs, err := storage.Read(r.store, storage.KeyCVs, []models.CV{})
	if err != nil {
		return err
	}
	if cv.ID == "" {
		cv.ID = newID("cv_")
	}
	if cv.UpdatedAt == "" {
		cv.UpdatedAt = timestamp()
	}
	cvs = append(cvs, *cv)
	if err := storage.Write(r.store, storage.KeyCVs, cvs); err != nil {
		return fmt.Errorf("failed to create CV: %w", err)
	}
	return nil
}

// Update applies a partial patch to the CV with the given id and refreshes
// its update time, even for an empty patch.
func (r *StoreCVRepository) Update(id string, patch models.CVPatch) (*models.CV, error) {
	cvs, err := storage.Read(r.store, storage.KeyCVs, []models.CV{})
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range cvs {
		if cvs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("CV with ID %s: %w", id, ErrNotFound)
	}
	patch.Apply(&cvs[idx])
	cvs[idx].UpdatedAt = timestamp()
	if err := storage.Write(r.store, storage.KeyCVs, cvs); err != nil {
		return nil, fmt.Errorf("failed to update CV %s: %w", id, err)
	}
	updated := cvs[idx]
	return &updated, nil
}
