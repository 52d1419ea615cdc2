package models

import (
	"time"

	"github.com/google/uuid"

	"booknotes/internal/notepolicy"
)

// User belongs to exactly one utility, chosen when the account is created.
type User struct {
	ID        uuid.UUID          `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Email     string             `json:"email"`
	Password  string             `json:"-"`
	Utility   notepolicy.Utility `json:"utility"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
