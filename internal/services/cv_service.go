package services

import (
	"fmt"
	"time"

	"jobmatch/internal/models"
	"jobmatch/internal/repositories"

	"github.com/samber/lo"
)

// CVService handles business logic for candidate CVs.
type CVService struct {
	repo    repositories.CVRepository
	latency time.Duration
}

// NewCVService creates a new CVService.
func NewCVService(repo repositories.CVRepository, latency time.Duration) *CVService {
	return &CVService{repo: repo, latency: latency}
}

// ListByUser returns the user's CVs, most recently updated first. An unknown
// user yields an empty list, not an error.
func (s *CVService) ListByUser(userID string) ([]models.CV, error) {
	pause(s.latency)
	return s.repo.ListByUser(userID)
}

// Create stores a new CV owned by userID. Id and update time come from the
// repository; any caller-supplied values for them are discarded.
func (s *CVService) Create(userID string, cv models.CV) (*models.CV, error) {
	pause(s.latency)

	cv.ID = ""
	cv.UpdatedAt = ""
	cv.UserID = userID
	if err := s.repo.Create(&cv); err != nil {
		return nil, err
	}
	return &cv, nil
}

// Update applies a partial patch to a CV owned by userID, refreshing its
// update time. An unknown id and a CV owned by someone else both fail with
// repositories.ErrNotFound, so callers cannot tell the two apart.
func (s *CVService) Update(userID, id string, patch models.CVPatch) (*models.CV, error) {
	pause(s.latency)

	owned, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if !lo.ContainsBy(owned, func(cv models.CV) bool { return cv.ID == id }) {
		return nil, fmt.Errorf("CV with ID %s: %w", id, repositories.ErrNotFound)
	}
	return s.repo.Update(id, patch)
}
