package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultVirtualBalance is the simulated starting balance for new accounts.
const DefaultVirtualBalance = 100000

// User represents a registered account. Password holds the bcrypt hash and
// is never serialized.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Role           string    `json:"role"`
	VirtualBalance float64   `json:"virtualBalance"`
	CreatedAt      time.Time `json:"createdAt"`
}

// HashPassword hashes the given plaintext and stores it on the user.
func (u *User) HashPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword compares the given plaintext against the stored hash.
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}
