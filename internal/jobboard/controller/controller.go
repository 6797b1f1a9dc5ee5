// Package controller implements the business rules for users, companies,
// jobs and applications: uniqueness checks, ownership checks, state
// transitions and the compensating actions around resume uploads.
package controller

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// Repository defines the storage interface the services build on.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	UserExistsByMobile(ctx context.Context, mobile string) (bool, error)
	SaveUser(ctx context.Context, user *models.User) error
	SetUserStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	SetUserPassword(ctx context.Context, id uuid.UUID, hash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	FindUsersByRecoveryEmail(ctx context.Context, recoveryEmail string) ([]models.User, error)

	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetCompanyByName(ctx context.Context, name string) (*models.Company, error)
	UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	CompanyExistsByName(ctx context.Context, name string) (bool, error)
	CompanyExistsByEmail(ctx context.Context, email string) (bool, error)
	CompaniesByHR(ctx context.Context, hrID uuid.UUID) ([]models.Company, error)

	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	UpdateJob(ctx context.Context, update *models.JobUpdate) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
	JobsByAddedBy(ctx context.Context, userID uuid.UUID) ([]models.Job, error)
	AllJobs(ctx context.Context) ([]models.Job, error)
	FilterJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error)

	CreateApplication(ctx context.Context, application *models.Application) error
	ApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	ApplicationsByJobOnDay(ctx context.Context, jobID uuid.UUID, day time.Time) ([]models.Application, error)
}

// EventProducer publishes domain events after successful mutations.
type EventProducer interface {
	Produce(eventType events.EventType, entityID string, payload any)
}

// ResumeStore is the external object store for uploaded resumes.
type ResumeStore interface {
	Upload(ctx context.Context, userID uuid.UUID, batchID, filename string, body io.Reader, size int64, contentType string) (models.ResumeFile, error)
	Remove(ctx context.Context, storageKey string) error
}

// ReportExporter writes the per-day application report and returns its path.
type ReportExporter interface {
	Export(companyName, date string, groups []models.JobApplications) (string, error)
}
