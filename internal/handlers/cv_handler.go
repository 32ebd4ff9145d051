package handlers

import (
	"errors"

	"jobmatch/internal/middleware"
	"jobmatch/internal/models"
	"jobmatch/internal/repositories"
	"jobmatch/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// CVHandler handles HTTP requests for candidate CVs. Routes are expected to
// be registered behind the candidate-role guard; the owner of every record is
// the authenticated caller.
type CVHandler struct {
	cvService *services.CVService
	validate  *validator.Validate
}

// NewCVHandler creates a new CVHandler.
func NewCVHandler(cvService *services.CVService) *CVHandler {
	return &CVHandler{
		cvService: cvService,
		validate:  validator.New(),
	}
}

// RegisterRoutes registers the CV routes on the given router, which the
// caller mounts at the CV path prefix behind the candidate guard.
func (h *CVHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleList)
	router.Post("/", h.HandleCreate)
	router.Patch("/:id", h.HandleUpdate)
}

// HandleList returns the caller's CVs, most recently updated first.
func (h *CVHandler) HandleList(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	cvs, err := h.cvService.ListByUser(user.ID)
	if err != nil {
		log.Errorf("Error listing CVs for %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not list CVs",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"cvs": cvs})
}

// CreateCVRequest represents the request body for creating a CV.
type CreateCVRequest struct {
	Title      string                `json:"title" validate:"required"`
	Summary    string                `json:"summary"`
	Skills     []string              `json:"skills"`
	Experience []models.CVExperience `json:"experience" validate:"dive"`
	FileBase64 string                `json:"fileBase64"`
}

// HandleCreate stores a new CV owned by the caller.
func (h *CVHandler) HandleCreate(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req CreateCVRequest
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

	cv, err := h.cvService.Create(user.ID, models.CV{
		Title:      req.Title,
		Summary:    req.Summary,
		Skills:     req.Skills,
		Experience: req.Experience,
		FileBase64: req.FileBase64,
	})
	if err != nil {
		log.Errorf("Error creating CV for %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create CV",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "CV created",
		"cv":      cv,
	})
}

// HandleUpdate applies a partial patch to one of the caller's CVs. A CV
// owned by someone else reads as not found.
func (h *CVHandler) HandleUpdate(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var patch models.CVPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	cv, err := h.cvService.Update(user.ID, c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "CV not found",
				"error":   err.Error(),
			})
		}
		log.Errorf("Error updating CV %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update CV",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "CV updated",
		"cv":      cv,
	})
}
