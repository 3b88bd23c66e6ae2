package domain

// User represents an owner account for the API.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., USR-1693526400000)
	Email        string `json:"email"`  // Unique
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // bcrypt hash, never serialized
	AuditFields
}
