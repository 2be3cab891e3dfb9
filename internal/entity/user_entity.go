package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the profile record maintained by the external profile service.
// Read-only here: intake copies applicant data from it at case creation.
type User struct {
	Id             uuid.UUID
	Name           string
	Identification string
	Address        string
	Phone          string
	Email          string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
