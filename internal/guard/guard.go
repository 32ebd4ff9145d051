// Package guard decides whether a guarded page may render for the current
// authentication snapshot. The decision is a pure function of the snapshot;
// the guard keeps no state of its own.
package guard

import "jobmatch/internal/models"

// Landing targets the guard redirects to.
const (
	LoginPath         = "/login"
	CandidateHomePath = "/candidate"
	EmployerHomePath  = "/employer"
)

// Action is the kind of decision the guard makes.
type Action int

const (
	// Wait suspends the decision while the session is still loading.
	Wait Action = iota
	// Redirect sends the caller to Decision.Target instead of the
	// requested content.
	Redirect
	// Allow lets the requested content render.
	Allow
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Action Action
	Target string
}

// Evaluate decides for a page guarded by requiredRole. An empty requiredRole
// guards only on being logged in. A logged-in user with the wrong role is
// silently redirected to their own landing page rather than shown an
// authorization error; that soft redirect is a deliberate product choice.
func Evaluate(loading bool, user *models.User, requiredRole models.Role) Decision {
	if loading {
		return Decision{Action: Wait}
	}
	if user == nil {
		return Decision{Action: Redirect, Target: LoginPath}
	}
	if requiredRole != "" && user.Role != requiredRole {
		return Decision{Action: Redirect, Target: HomePath(user.Role)}
	}
	return Decision{Action: Allow}
}

// HomePath returns the landing page for a role.
func HomePath(role models.Role) string {
	if role == models.RoleEmployer {
		return EmployerHomePath
	}
	return CandidateHomePath
}
