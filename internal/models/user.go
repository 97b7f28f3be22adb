package models

// Username and password hash length limits enforced at the service boundary
// and mirrored by the schema.
const (
	UsernameMaxLength     = 50
	PasswordHashMaxLength = 128
)

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}
