package services

import (
	"time"

	"jobmatch/internal/models"
	"jobmatch/internal/repositories"

	log "github.com/sirupsen/logrus"
)

// JobEventPublisher publishes job lifecycle events to the message broker.
type JobEventPublisher interface {
	PublishJobPosted(event map[string]interface{}) error
}

// JobService handles business logic for employer job postings.
type JobService struct {
	repo      repositories.JobRepository
	publisher JobEventPublisher // may be nil when no broker is configured
	latency   time.Duration
}

// NewJobService creates a new JobService.
func NewJobService(repo repositories.JobRepository, publisher JobEventPublisher, latency time.Duration) *JobService {
	return &JobService{repo: repo, publisher: publisher, latency: latency}
}

// ListByEmployer returns the employer's postings, most recently posted first.
func (s *JobService) ListByEmployer(employerID string) ([]models.Job, error) {
	pause(s.latency)
	return s.repo.ListByEmployer(employerID)
}

// Create stores a new posting owned by employerID and announces it on the
// broker when one is configured. The posting succeeds even if publishing
// fails; the event is advisory.
func (s *JobService) Create(employerID string, job models.Job) (*models.Job, error) {
	pause(s.latency)

	job.ID = ""
	job.PostedAt = ""
	job.EmployerID = employerID
	if err := s.repo.Create(&job); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"jobId":      job.ID,
			"employerId": job.EmployerID,
			"title":      job.Title,
			"postedAt":   job.PostedAt,
		}
		if err := s.publisher.PublishJobPosted(event); err != nil {
			log.Warnf("Failed to publish job posted event for %s: %v", job.ID, err)
		}
	}
	return &job, nil
}
