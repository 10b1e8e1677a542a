// safemap/models/safety_pin.go

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location types and the seven safety-education categories use the
// Korean wire values the clients already store and display.
const (
	LocationSchool  = "학교"
	LocationHome    = "집"
	LocationVillage = "마을"
)

var LocationTypes = []string{LocationSchool, LocationHome, LocationVillage}

var SafetyCategories = []string{
	"생활안전",
	"교통안전",
	"응급처치",
	"폭력예방 및 신변보호",
	"약물 및 사이버 중독 예방",
	"재난안전",
	"직업안전",
}

func IsValidLocationType(s string) bool {
	for _, t := range LocationTypes {
		if s == t {
			return true
		}
	}
	return false
}

func IsValidCategory(s string) bool {
	for _, c := range SafetyCategories {
		if s == c {
			return true
		}
	}
	return false
}

// SafetyPin represents the 'safety_pins' table: one reported safety
// issue. Coordinates and address are present only for outdoor (마을)
// reports.
type SafetyPin struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ClassID      uuid.UUID `json:"class_id" gorm:"type:uuid;not null;index"`
	StudentID    uuid.UUID `json:"student_id" gorm:"type:uuid;not null;index"`
	LocationType string    `json:"location_type" gorm:"size:20;not null"`
	Category     string    `json:"category" gorm:"size:50;not null"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Address      *string   `json:"address"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *SafetyPin) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PinInput binds the JSON body for pin creation. The reporting student
// and class come from the session token, not from the body.
type PinInput struct {
	LocationType string   `json:"location_type" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Address      *string  `json:"address"`
	ImageURL     string   `json:"image_url"`
}

// PinResponse is a SafetyPin row joined with the reporting student's
// display name.
type PinResponse struct {
	ID           uuid.UUID `json:"id"`
	ClassID      uuid.UUID `json:"class_id"`
	StudentID    uuid.UUID `json:"student_id"`
	LocationType string    `json:"location_type"`
	Category     string    `json:"category"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	Address      *string   `json:"address"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	StudentName  string    `json:"student_name"`
}
