package services

import (
	"errors"
	"fmt"
	"time"

	"jobmatch/internal/models"
	"jobmatch/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrDuplicateEmail is returned by Register when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login when no user matches the
	// email and password exactly.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterRequest carries the fields a new account is created from. FullName
// applies to candidates, CompanyName to employers.
type RegisterRequest struct {
	Email       string
	Password    string
	Role        models.Role
	FullName    string
	CompanyName string
}

// AuthService composes the user repository and the session manager into
// register/login/logout/current-user operations, and issues the JWT tokens
// the HTTP layer identifies callers with.
type AuthService struct {
	users      repositories.UserRepository
	sessions   *SessionManager
	jwtSecret  []byte
	tokenDurat time.Duration
	latency    time.Duration
}

// NewAuthService creates a new AuthService. latency is the simulated network
// round-trip applied to every operation; zero disables it.
func NewAuthService(users repositories.UserRepository, sessions *SessionManager, jwtSecret string, latency time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		latency:    latency,
	}
}

// Register creates a new account and activates its session. Email matching is
// case-sensitive exact equality; the password is stored as given. Creating
// the user and activating the session are two separate writes, not atomic.
func (s *AuthService) Register(req RegisterRequest) (*models.User, error) {
	pause(s.latency)

	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("email '%s': %w", req.Email, ErrDuplicateEmail)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if err := s.sessions.SetActive(user.ID); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}
	return user, nil
}

// Login authenticates by exact email and password match and activates the
// session. On failure the session is left untouched.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	pause(s.latency)

	user, err := s.users.GetByEmail(email)
	if errors.Is(err, repositories.ErrNotFound) {
		// Do not reveal whether the email exists.
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	if err := s.sessions.SetActive(user.ID); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}
	return user, nil
}

// Logout clears the session. Calling it while already logged out is a no-op.
func (s *AuthService) Logout() error {
	pause(s.latency / 3)
	return s.sessions.Clear()
}

// CurrentUser resolves the session to a live user, or nil when logged out.
// A session pointing at a deleted user reads as logged out, never an error.
func (s *AuthService) CurrentUser() (*models.User, error) {
	pause(s.latency / 3)
	return s.sessions.Current()
}

// IssueToken generates a signed JWT identifying the user for guarded routes.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Debugf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// ResolveToken validates the token and loads the user it identifies.
func (s *AuthService) ResolveToken(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token: missing user_id claim")
	}
	return s.users.GetByID(userID)
}
