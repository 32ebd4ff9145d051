package handlers

import (
	"jobmatch/internal/middleware"
	"jobmatch/internal/models"
	"jobmatch/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// JobHandler handles HTTP requests for employer job postings. Routes are
// expected to be registered behind the employer-role guard.
type JobHandler struct {
	jobService *services.JobService
	validate   *validator.Validate
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the job routes on the given router, which the
// caller mounts at the job path prefix behind the employer guard.
func (h *JobHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleList)
	router.Post("/", h.HandleCreate)
}

// HandleList returns the caller's postings, most recently posted first.
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	jobs, err := h.jobService.ListByEmployer(user.ID)
	if err != nil {
		log.Errorf("Error listing jobs for %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list jobs",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

// CreateJobRequest represents the request body for posting a job.
type CreateJobRequest struct {
	Title          string                `json:"title" validate:"required"`
	Description    string                `json:"description" validate:"required"`
	Skills         []string              `json:"skills"`
	SalaryMin      *float64              `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax      *float64              `json:"salaryMax" validate:"omitempty,gte=0"`
	Location       string                `json:"location"`
	EmploymentType models.EmploymentType `json:"employmentType" validate:"required,oneof=full-time part-time contract intern"`
}

// HandleCreate stores a new posting owned by the caller.
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	job, err := h.jobService.Create(user.ID, models.Job{
		Title:          req.Title,
		Description:    req.Description,
		Skills:         req.Skills,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		log.Errorf("Error creating job for %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create job",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job posted",
		"job":     job,
	})
}
