package models

import (
	"time"

	"github.com/google/uuid"
)

// ResumeFile describes one uploaded resume object.
type ResumeFile struct {
	// SecureURL is the publicly reachable location of the object.
	SecureURL string `json:"secureUrl"`
	// StorageKey identifies the object inside the store for deletion.
	StorageKey string `json:"storageKey"`
	// BatchID groups the files of a single submission.
	BatchID string `json:"batchId"`
}

// Application is a user's application to a job. The current flow produces
// exactly one resume entry; the list form is kept for extensibility.
type Application struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	JobID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"jobId"`
	UserID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"userId"`
	UserTechSkills []string     `gorm:"serializer:json" json:"userTechSkills"`
	UserSoftSkills []string     `gorm:"serializer:json" json:"userSoftSkills"`
	UserResume     []ResumeFile `gorm:"serializer:json" json:"userResume"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// JobApplications pairs a job with its applications and the applicant
// projections, as assembled for company review and reporting.
type JobApplications struct {
	Job          Job                    `json:"job"`
	Applications []ApplicantApplication `json:"applications"`
}

// ApplicantApplication is an application joined with its owning user's
// report projection.
type ApplicantApplication struct {
	Application Application `json:"application"`
	User        Applicant   `json:"user"`
}
