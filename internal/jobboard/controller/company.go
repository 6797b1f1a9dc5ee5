package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// reportDateLayout is the calendar-day format accepted by the report endpoint.
const reportDateLayout = "2006-01-02"

// CompanyService manages company records and the per-company application
// review and reporting flows.
type CompanyService struct {
	repo     Repository
	producer EventProducer
	exporter ReportExporter
	logger   *zap.Logger
}

func NewCompanyService(repo Repository, producer EventProducer, exporter ReportExporter, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		exporter: exporter,
		logger:   logger.Named("company_service"),
	}
}

// Add creates a company owned by the acting HR user. Name and email must
// not collide with an existing company.
func (s *CompanyService) Add(ctx context.Context, hrID uuid.UUID, company *models.Company) (*models.Company, error) {
	nameTaken, err := s.repo.CompanyExistsByName(ctx, company.CompanyName)
	if err != nil {
		return nil, fmt.Errorf("failed to check name existence: %w", err)
	}
	if nameTaken {
		return nil, fmt.Errorf("%w: company name already exists", e.ErrConflict)
	}
	emailTaken, err := s.repo.CompanyExistsByEmail(ctx, company.CompanyEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if emailTaken {
		return nil, fmt.Errorf("%w: company email already exists", e.ErrConflict)
	}

	company.ID = uuid.New()
	company.CompanyHR = hrID
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	go func() {
		s.producer.Produce(events.CompanyCreated, company.ID.String(), company)
	}()
	return company, nil
}

// Update applies a partial update after the ownership check. Changed unique
// fields must not collide with another company.
func (s *CompanyService) Update(ctx context.Context, actorID uuid.UUID, update *models.CompanyUpdate) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, update.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: company not found", e.ErrNotFound)
	}
	if company.CompanyHR.String() != actorID.String() {
		return nil, fmt.Errorf("%w: not the company owner", e.ErrUnauthorized)
	}

	if update.CompanyName != nil && *update.CompanyName != company.CompanyName {
		taken, err := s.repo.CompanyExistsByName(ctx, *update.CompanyName)
		if err != nil {
			return nil, fmt.Errorf("failed to check name existence: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: company name already exists", e.ErrConflict)
		}
	}
	if update.CompanyEmail != nil && *update.CompanyEmail != company.CompanyEmail {
		taken, err := s.repo.CompanyExistsByEmail(ctx, *update.CompanyEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: company email already exists", e.ErrConflict)
		}
	}

	if err := s.repo.UpdateCompany(ctx, update); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	updated, err := s.repo.GetCompany(ctx, update.ID)
	if err != nil {
		s.logger.Error("Failed to load company after update",
			zap.Error(err),
			zap.String("company_id", update.ID.String()),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.CompanyUpdated, updated.ID.String(), updated)
	}()
	return updated, nil
}

// Delete removes the company after the ownership check.
func (s *CompanyService) Delete(ctx context.Context, actorID, companyID uuid.UUID) error {
	company, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("%w: company not found", e.ErrNotFound)
	}
	if company.CompanyHR.String() != actorID.String() {
		return fmt.Errorf("%w: not the company owner", e.ErrUnauthorized)
	}

	if err := s.repo.DeleteCompany(ctx, companyID); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	go func() {
		s.producer.Produce(events.CompanyDeleted, companyID.String(), company)
	}()
	return nil
}

// GetData returns the company together with its HR user's job postings.
func (s *CompanyService) GetData(ctx context.Context, companyID uuid.UUID) (*models.Company, []models.Job, error) {
	company, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: company not found", e.ErrNotFound)
	}
	jobs, err := s.repo.JobsByAddedBy(ctx, company.CompanyHR)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil, nil, fmt.Errorf("%w: no jobs found", e.ErrNotFound)
	}
	return company, jobs, nil
}

// SearchByName finds a company by its exact name.
func (s *CompanyService) SearchByName(ctx context.Context, name string) (*models.Company, error) {
	company, err := s.repo.GetCompanyByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: company not found", e.ErrNotFound)
	}
	return company, nil
}

// ApplicationsForJobs assembles, for the acting owner's jobs, every
// application with its applicant projection.
func (s *CompanyService) ApplicationsForJobs(ctx context.Context, actorID uuid.UUID, companyName string) ([]models.JobApplications, error) {
	if err := s.checkOwnership(ctx, actorID, companyName); err != nil {
		return nil, err
	}

	jobs, err := s.repo.JobsByAddedBy(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs: %w", err)
	}

	groups := make([]models.JobApplications, 0, len(jobs))
	total := 0
	for _, job := range jobs {
		applications, err := s.repo.ApplicationsByJob(ctx, job.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get applications: %w", err)
		}
		group, err := s.joinApplicants(ctx, job, applications)
		if err != nil {
			return nil, err
		}
		total += len(group.Applications)
		groups = append(groups, group)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: no applications found", e.ErrNotFound)
	}
	return groups, nil
}

// ApplicationsReport exports the owner's applications submitted on the given
// calendar day to a spreadsheet and returns the file path.
func (s *CompanyService) ApplicationsReport(ctx context.Context, actorID uuid.UUID, companyName, date string) (string, error) {
	day, err := time.Parse(reportDateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: date must be formatted as %s", e.ErrInvalidArguments, reportDateLayout)
	}
	if err := s.checkOwnership(ctx, actorID, companyName); err != nil {
		return "", err
	}

	jobs, err := s.repo.JobsByAddedBy(ctx, actorID)
	if err != nil {
		return "", fmt.Errorf("failed to get jobs: %w", err)
	}

	groups := make([]models.JobApplications, 0, len(jobs))
	for _, job := range jobs {
		applications, err := s.repo.ApplicationsByJobOnDay(ctx, job.ID, day)
		if err != nil {
			return "", fmt.Errorf("failed to get applications: %w", err)
		}
		group, err := s.joinApplicants(ctx, job, applications)
		if err != nil {
			return "", err
		}
		groups = append(groups, group)
	}

	// The exporter surfaces not-found for an empty day before touching disk.
	path, err := s.exporter.Export(companyName, date, groups)
	if err != nil {
		return "", err
	}
	s.logger.Info("application report exported",
		zap.String("company", companyName),
		zap.String("date", date),
		zap.String("path", path),
	)
	return path, nil
}

func (s *CompanyService) checkOwnership(ctx context.Context, actorID uuid.UUID, companyName string) error {
	company, err := s.repo.GetCompanyByName(ctx, companyName)
	if err != nil {
		return fmt.Errorf("%w: company not found", e.ErrNotFound)
	}
	if company.CompanyHR.String() != actorID.String() {
		return fmt.Errorf("%w: not the company owner", e.ErrUnauthorized)
	}
	return nil
}

func (s *CompanyService) joinApplicants(ctx context.Context, job models.Job, applications []models.Application) (models.JobApplications, error) {
	group := models.JobApplications{
		Job:          job,
		Applications: make([]models.ApplicantApplication, 0, len(applications)),
	}
	for _, application := range applications {
		user, err := s.repo.GetUser(ctx, application.UserID)
		if err != nil {
			return models.JobApplications{}, fmt.Errorf("failed to load applicant: %w", err)
		}
		group.Applications = append(group.Applications, models.ApplicantApplication{
			Application: application,
			User:        user.Applicant(),
		})
	}
	return group, nil
}
