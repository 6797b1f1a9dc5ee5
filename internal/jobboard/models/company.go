package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a company record owned by a single Company_HR user.
// CompanyName and CompanyEmail are each globally unique.
type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName string    `gorm:"uniqueIndex;not null" json:"companyName"`
	Description string    `gorm:"size:3000" json:"description"`
	Industry    string    `json:"industry"`
	Address     string    `json:"address"`
	// NumberOfEmployees is a range with the pattern "<int>-<int>", e.g. "11-50".
	NumberOfEmployees string    `json:"numberOfEmployees"`
	CompanyEmail      string    `gorm:"uniqueIndex;not null" json:"companyEmail"`
	CompanyHR         uuid.UUID `gorm:"type:uuid;not null" json:"companyHR"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CompanyUpdate represents the fields that can be updated for a Company.
// Pointer types are used to allow partial updates.
type CompanyUpdate struct {
	ID                uuid.UUID
	CompanyName       *string
	Description       *string
	Industry          *string
	Address           *string
	NumberOfEmployees *string
	CompanyEmail      *string
}
