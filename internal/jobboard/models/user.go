// Package models defines the core domain models: User, Company, Job and
// Application, together with the pointer-field update structs used for
// partial updates.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access role assigned to a user account.
type Role string

const (
	// RoleUser is a regular applicant account.
	RoleUser Role = "User"
	// RoleCompanyHR owns company records and job postings.
	RoleCompanyHR Role = "Company_HR"
)

// Status is the user's presence status.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// User represents a registered account.
// Email and MobileNumber are each globally unique.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	// FirstName and LastName derive Username ("<first> <last>").
	FirstName     string    `gorm:"not null" json:"firstName"`
	LastName      string    `gorm:"not null" json:"lastName"`
	Username      string    `gorm:"not null" json:"username"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	RecoveryEmail string    `json:"recoveryEmail,omitempty"`
	DateOfBirth   time.Time `json:"DOB"`
	MobileNumber  string    `gorm:"uniqueIndex;not null" json:"mobileNumber"`
	Role          Role      `gorm:"not null;default:User" json:"role"`
	Status        Status    `gorm:"not null;default:offline" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PublicProfile is the projection exposed on the public profile endpoint.
type PublicProfile struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Role         Role   `json:"role"`
	Status       Status `json:"status"`
}

// Public returns the reduced profile projection of u.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		Role:         u.Role,
		Status:       u.Status,
	}
}

// Applicant is the user projection attached to applications in company
// reports: no password, no timestamps, no recovery email.
type Applicant struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DateOfBirth  time.Time `json:"DOB"`
	MobileNumber string    `json:"mobileNumber"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
}

// Applicant returns the application-facing projection of u.
func (u *User) Applicant() Applicant {
	return Applicant{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		Email:        u.Email,
		DateOfBirth:  u.DateOfBirth,
		MobileNumber: u.MobileNumber,
		Role:         u.Role,
		Status:       u.Status,
	}
}

// UserUpdate represents the fields a user may change on their own account.
// Pointer types allow partial updates; nil fields keep their previous value.
type UserUpdate struct {
	ID            uuid.UUID
	FirstName     *string
	LastName      *string
	Email         *string
	RecoveryEmail *string
	DateOfBirth   *time.Time
	MobileNumber  *string
}
