package models

import (
	"time"

	"github.com/google/uuid"
)

// JobLocation is where the work happens.
type JobLocation string

const (
	LocationOnsite   JobLocation = "onsite"
	LocationRemotely JobLocation = "remotely"
	LocationHybrid   JobLocation = "hybrid"
)

// WorkingTime is the employment time model.
type WorkingTime string

const (
	PartTime WorkingTime = "part-time"
	FullTime WorkingTime = "full-time"
)

// SeniorityLevel is the required experience level for a job.
type SeniorityLevel string

const (
	Junior   SeniorityLevel = "Junior"
	MidLevel SeniorityLevel = "Mid-Level"
	Senior   SeniorityLevel = "Senior"
	TeamLead SeniorityLevel = "Team-Lead"
	CTO      SeniorityLevel = "CTO"
)

// Job is a posting added by a Company_HR user. AddedBy is the owning
// reference; only that user may update or delete the job.
type Job struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	JobTitle        string         `gorm:"not null" json:"jobTitle"`
	JobLocation     JobLocation    `gorm:"not null" json:"jobLocation"`
	WorkingTime     WorkingTime    `gorm:"not null" json:"workingTime"`
	SeniorityLevel  SeniorityLevel `gorm:"not null" json:"seniorityLevel"`
	JobDescription  string         `gorm:"size:3000" json:"jobDescription"`
	TechnicalSkills []string       `gorm:"serializer:json" json:"technicalSkills"`
	SoftSkills      []string       `gorm:"serializer:json" json:"softSkills"`
	AddedBy         uuid.UUID      `gorm:"type:uuid;not null" json:"addedBy"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// JobUpdate represents the fields that can be updated for a Job.
type JobUpdate struct {
	ID              uuid.UUID
	JobTitle        *string
	JobLocation     *JobLocation
	WorkingTime     *WorkingTime
	SeniorityLevel  *SeniorityLevel
	JobDescription  *string
	TechnicalSkills *[]string
	SoftSkills      *[]string
}

// JobWithCompany pairs a job with the company records of the HR user who
// posted it, as returned by the public job listing.
type JobWithCompany struct {
	Job                Job       `json:"job"`
	CompanyInformation []Company `json:"companyInformation"`
}

// JobFilter narrows a job search. Zero-valued fields are ignored;
// TechnicalSkills matches jobs listing any of the given skills.
type JobFilter struct {
	WorkingTime     WorkingTime
	JobLocation     JobLocation
	SeniorityLevel  SeniorityLevel
	JobTitle        string
	TechnicalSkills []string
}
