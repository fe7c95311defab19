package models

// User is the authenticated staff member as reported by the backend's auth
// surface. Authentication itself is delegated entirely to the backend.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
}
