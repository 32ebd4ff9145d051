package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"jobmatch/internal/handlers"
	"jobmatch/internal/middleware"
	"jobmatch/internal/models"
	"jobmatch/internal/repositories"
	"jobmatch/internal/services"
	"jobmatch/internal/storage"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

// setupApp builds a Fiber app over a fresh in-memory store with all handlers
// and guards wired the way main does it.
func setupApp() *fiber.App {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	store := storage.NewMemoryStore()
	userRepo := repositories.NewStoreUserRepository(store)
	cvRepo := repositories.NewStoreCVRepository(store)
	jobRepo := repositories.NewStoreJobRepository(store)

	sessionManager := services.NewSessionManager(store, userRepo)
	authService := services.NewAuthService(userRepo, sessionManager, jwtSecret, 0)
	cvService := services.NewCVService(cvRepo, 0)
	jobService := services.NewJobService(jobRepo, nil, 0)

	authHandler := handlers.NewAuthHandler(authService)
	cvHandler := handlers.NewCVHandler(cvService)
	jobHandler := handlers.NewJobHandler(jobService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)

	candidateRoutes := apiV1.Group("/cvs", middleware.AuthRequired(authService, models.RoleCandidate))
	cvHandler.RegisterRoutes(candidateRoutes)

	employerRoutes := apiV1.Group("/jobs", middleware.AuthRequired(authService, models.RoleEmployer))
	jobHandler.RegisterRoutes(employerRoutes)

	return app
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	if len(raw) > 0 {
		// Redirect responses have no JSON body.
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func registerUser(t *testing.T, app *fiber.App, email string, role models.Role) (userID, token string) {
	t.Helper()

	payload := map[string]interface{}{
		"email":    email,
		"password": "password123",
		"role":     string(role),
	}
	if role == models.RoleCandidate {
		payload["fullName"] = "Test Candidate"
	} else {
		payload["companyName"] = "Test Company"
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", payload)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	user := body["user"].(map[string]interface{})
	return user["id"].(string), body["token"].(string)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp()

	// Registration succeeds and returns a sanitized user plus a token.
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
		"role":     "candidate",
		"fullName": "Alice",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	user := body["user"].(map[string]interface{})
	assert.NotEmpty(t, user["id"])
	assert.NotContains(t, user, "password")
	assert.NotEmpty(t, body["token"])

	// Registering the same email again fails with a conflict.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "otherpassword",
		"role":     "employer",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// The session resolves to the registered user.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", body["user"].(map[string]interface{})["email"])

	// Wrong password is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Correct credentials log in.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	// Logout clears the session; a second logout still succeeds.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, body["user"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "not-an-email",
		"password": "123",
		"role":     "admin",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "Email")
	assert.Contains(t, errs, "Password")
	assert.Contains(t, errs, "Role")
}

func TestCVLifecycle(t *testing.T) {
	app := setupApp()
	_, token := registerUser(t, app, "candidate@example.com", models.RoleCandidate)

	// Create a CV.
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/cvs", token, map[string]interface{}{
		"title":   "Backend Developer",
		"summary": "Five years of Go.",
		"skills":  []string{"Go", "SQL"},
		"experience": []map[string]interface{}{
			{"company": "Acme", "role": "Developer", "years": 2.5},
		},
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	cv := body["cv"].(map[string]interface{})
	cvID := cv["id"].(string)
	assert.NotEmpty(t, cvID)
	assert.NotEmpty(t, cv["updatedAt"])

	// It shows up exactly once in the list.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/cvs", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	cvs := body["cvs"].([]interface{})
	assert.Len(t, cvs, 1)
	assert.Equal(t, cvID, cvs[0].(map[string]interface{})["id"])

	// Patch only the title; the summary survives.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/v1/cvs/"+cvID, token, map[string]interface{}{
		"title": "Senior Backend Developer",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := body["cv"].(map[string]interface{})
	assert.Equal(t, "Senior Backend Developer", updated["title"])
	assert.Equal(t, "Five years of Go.", updated["summary"])

	// Patching an unknown id is a 404.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/cvs/cv_missing", token, map[string]interface{}{
		"title": "anything",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Another candidate cannot patch this CV; it reads as not found.
	_, otherToken := registerUser(t, app, "other-candidate@example.com", models.RoleCandidate)
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/cvs/"+cvID, otherToken, map[string]interface{}{
		"title": "hijacked",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// And the CV is unchanged for its owner.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/cvs", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Senior Backend Developer", body["cvs"].([]interface{})[0].(map[string]interface{})["title"])
}

func TestJobLifecycle(t *testing.T) {
	app := setupApp()
	employerID, token := registerUser(t, app, "employer@example.com", models.RoleEmployer)
	_, otherToken := registerUser(t, app, "other@example.com", models.RoleEmployer)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/jobs", token, map[string]interface{}{
		"title":          "Backend Developer",
		"description":    "Build services",
		"skills":         []string{"Go"},
		"salaryMin":      60000,
		"salaryMax":      90000,
		"location":       "Remote",
		"employmentType": "full-time",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	job := body["job"].(map[string]interface{})
	assert.Equal(t, employerID, job["employerId"])

	// The posting appears only in its owner's list.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/jobs", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["jobs"].([]interface{}), 1)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/jobs", otherToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["jobs"])
}

func TestRoleGuardRedirects(t *testing.T) {
	app := setupApp()
	_, candidateToken := registerUser(t, app, "candidate@example.com", models.RoleCandidate)
	_, employerToken := registerUser(t, app, "employer@example.com", models.RoleEmployer)

	// No token: guarded routes redirect to the login entry point.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/cvs", "", nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// Wrong role: silently redirected to their own landing page.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/jobs", candidateToken, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/candidate", resp.Header.Get("Location"))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/cvs", employerToken, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/employer", resp.Header.Get("Location"))

	// The right role passes through its own guard even though the other
	// role's guard is mounted alongside it.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/cvs", candidateToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/jobs", employerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
