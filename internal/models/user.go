package models

// User is an account that can sign in. At most one user may be admin.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
	IsAdmin      bool   `json:"is_admin"`
}
