// safemap/models/class.go

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class represents the 'classes' table. A class is a group of students
// sharing a 4-digit join PIN.
type Class struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Pin       string    `json:"pin" gorm:"size:4;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	TeacherID *string   `json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ClassInput binds the JSON body for class creation. The PIN is always
// server-generated.
type ClassInput struct {
	Name string `json:"name" binding:"required"`
}
