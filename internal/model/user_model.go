package model

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the profile table owned by the external profile service.
// This service only reads from it.
type User struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);column:nombre"`
	Identification string    `gorm:"type:varchar(50);column:identificacion"`
	Address        string    `gorm:"type:varchar(255);column:direccion"`
	Phone          string    `gorm:"type:varchar(50);column:telefono"`
	Email          string    `gorm:"type:varchar(255)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
