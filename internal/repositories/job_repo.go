package repositories

import (
	"fmt"
	"sort"
	"strings"

	"jobmatch/internal/models"
	"jobmatch/internal/storage"

	"github.com/samber/lo"
)

// JobRepository defines the interface for job posting data access. Postings
// are create-only.
type JobRepository interface {
	ListByEmployer(employerID string) ([]models.Job, error)
	Create(job *models.Job) error
}

// StoreJobRepository keeps the job collection as one serialized document in
// the key-value store.
type StoreJobRepository struct {
	store storage.Store
}

// NewStoreJobRepository creates a new instance of StoreJobRepository.
func NewStoreJobRepository(store storage.Store) *StoreJobRepository {
	return &StoreJobRepository{store: store}
}

// ListByEmployer returns the employer's postings, most recently posted first.
func (r *StoreJobRepository) ListByEmployer(employerID string) ([]models.Job, error) {
	jobs, err := storage.Read(r.store, storage.KeyJobs, []models.Job{})
	if err != nil {
		return nil, err
	}
	owned := lo.Filter(jobs, func(job models.Job, _ int) bool {
		return job.EmployerID == employerID
	})
	sort.SliceStable(owned, func(i, j int) bool {
		return strings.Compare(owned[i].PostedAt, owned[j].PostedAt) > 0
	})
	return owned, nil
}

// Create appends a new posting, stamping id and posting time when the caller
// left them empty. PostedAt is immutable afterwards.
func (r *StoreJobRepository) Create(job *models.Job) error {
	jobs, err := storage.Read(r.store, storage.KeyJobs, []models.Job{})
	if err != nil {
		return err
	}
	if job.ID == "" {
		job.ID = newID("job_")
	}
	if job.PostedAt == "" {
		job.PostedAt = timestamp()
	}
	jobs = append(jobs, *job)
	if err := storage.Write(r.store, storage.KeyJobs, jobs); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}
