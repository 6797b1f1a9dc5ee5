package controller

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// JobService manages job postings and the apply-for-job flow.
type JobService struct {
	repo     Repository
	producer EventProducer
	resumes  ResumeStore
	logger   *zap.Logger
}

func NewJobService(repo Repository, producer EventProducer, resumes ResumeStore, logger *zap.Logger) *JobService {
	return &JobService{
		repo:     repo,
		producer: producer,
		resumes:  resumes,
		logger:   logger.Named("job_service"),
	}
}

// Add creates a posting owned by the acting HR user.
func (s *JobService) Add(ctx context.Context, hrID uuid.UUID, job *models.Job) (*models.Job, error) {
	job.ID = uuid.New()
	job.AddedBy = hrID
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	go func() {
		s.producer.Produce(events.JobCreated, job.ID.String(), job)
	}()
	return job, nil
}

// Update applies a partial update after the ownership check.
func (s *JobService) Update(ctx context.Context, actorID uuid.UUID, update *models.JobUpdate) (*models.Job, error) {
	job, err := s.repo.GetJob(ctx, update.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: job not found", e.ErrNotFound)
	}
	if job.AddedBy.String() != actorID.String() {
		return nil, fmt.Errorf("%w: not the job owner", e.ErrUnauthorized)
	}

	if err := s.repo.UpdateJob(ctx, update); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	updated, err := s.repo.GetJob(ctx, update.ID)
	if err != nil {
		s.logger.Error("Failed to load job after update",
			zap.Error(err),
			zap.String("job_id", update.ID.String()),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.JobUpdated, updated.ID.String(), updated)
	}()
	return updated, nil
}

// Delete removes the posting after the ownership check.
func (s *JobService) Delete(ctx context.Context, actorID, jobID uuid.UUID) error {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("%w: job not found", e.ErrNotFound)
	}
	if job.AddedBy.String() != actorID.String() {
		return fmt.Errorf("%w: not the job owner", e.ErrUnauthorized)
	}

	if err := s.repo.DeleteJob(ctx, jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	go func() {
		s.producer.Produce(events.JobDeleted, jobID.String(), job)
	}()
	return nil
}

// AllWithCompany lists every posting together with the poster's companies.
func (s *JobService) AllWithCompany(ctx context.Context) ([]models.JobWithCompany, error) {
	jobs, err := s.repo.AllJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no jobs found", e.ErrNotFound)
	}

	listing := make([]models.JobWithCompany, 0, len(jobs))
	for _, job := range jobs {
		companies, err := s.repo.CompaniesByHR(ctx, job.AddedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to get companies: %w", err)
		}
		listing = append(listing, models.JobWithCompany{
			Job:                job,
			CompanyInformation: companies,
		})
	}
	return listing, nil
}

// ForCompany lists the postings of the company with the given name.
func (s *JobService) ForCompany(ctx context.Context, companyName string) (*models.Company, []models.Job, error) {
	company, err := s.repo.GetCompanyByName(ctx, companyName)
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

// Filter searches postings by the given criteria, newest first.
func (s *JobService) Filter(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	jobs, err := s.repo.FilterJobs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to filter jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no jobs found", e.ErrNotFound)
	}
	return jobs, nil
}

// Resume is the uploaded file of an application.
type Resume struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Apply submits an application with one resume. The file is uploaded first;
// if the subsequent database write fails the uploaded object is removed as a
// best-effort compensating action.
func (s *JobService) Apply(ctx context.Context, userID, jobID uuid.UUID, techSkills, softSkills []string, resume *Resume) (*models.Application, error) {
	if _, err := s.repo.GetJob(ctx, jobID); err != nil {
		return nil, fmt.Errorf("%w: job not found", e.ErrNotFound)
	}
	if resume == nil || resume.Body == nil {
		return nil, fmt.Errorf("%w: please upload your resume", e.ErrInvalidArguments)
	}

	batchID := uuid.NewString()
	uploaded, err := s.resumes.Upload(ctx, userID, batchID, resume.Filename, resume.Body, resume.Size, resume.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}

	application := &models.Application{
		ID:             uuid.New(),
		JobID:          jobID,
		UserID:         userID,
		UserTechSkills: techSkills,
		UserSoftSkills: softSkills,
		UserResume:     []models.ResumeFile{uploaded},
	}
	if err := s.repo.CreateApplication(ctx, application); err != nil {
		// Compensate: drop the orphaned upload, ignoring a second failure.
		_ = s.resumes.Remove(ctx, uploaded.StorageKey)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	go func() {
		s.producer.Produce(events.ApplicationSubmitted, application.ID.String(), application)
	}()
	return application, nil
}
