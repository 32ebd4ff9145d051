package models

// Session points at the currently authenticated user. At most one exists per
// store; a JSON null under the session key means logged out.
type Session struct {
	UserID string `json:"userId"`
}
