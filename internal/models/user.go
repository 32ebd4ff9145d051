package models

// Role classifies an account as a job seeker or a job poster. Immutable after
// registration.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// User represents a registered account of either role.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email" validate:"required,email"`
	// Stored and compared as an opaque plain string. This is a demo app with
	// no real credential security, per product decision.
	Password    string `json:"password,omitempty" validate:"required,min=6"`
	Role        Role   `json:"role" validate:"required,oneof=candidate employer"`
	FullName    string `json:"fullName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Sanitized returns a copy safe to serialize in HTTP responses.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
