package db

import (
	"context"
	"slices"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/google/uuid"

	"github.com/gartstein/jobboard/internal/jobboard/models"
)

func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	if job == nil {
		return e.ErrInvalidArguments
	}
	return translate(r.db.WithContext(ctx).Create(job).Error)
}

func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	if id == uuid.Nil {
		return nil, e.ErrInvalidArguments
	}
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

// UpdateJob applies the non-nil scalar fields of update. Skill lists are
// serialized columns and therefore replaced through Updates as well.
func (r *Repository) UpdateJob(ctx context.Context, update *models.JobUpdate) error {
	if update == nil || update.ID == uuid.Nil {
		return e.ErrInvalidArguments
	}
	fields := map[string]any{}
	if update.JobTitle != nil {
		fields["job_title"] = *update.JobTitle
	}
	if update.JobLocation != nil {
		fields["job_location"] = *update.JobLocation
	}
	if update.WorkingTime != nil {
		fields["working_time"] = *update.WorkingTime
	}
	if update.SeniorityLevel != nil {
		fields["seniority_level"] = *update.SeniorityLevel
	}
	if update.JobDescription != nil {
		fields["job_description"] = *update.JobDescription
	}
	if update.TechnicalSkills != nil {
		fields["technical_skills"] = marshalList(*update.TechnicalSkills)
	}
	if update.SoftSkills != nil {
		fields["soft_skills"] = marshalList(*update.SoftSkills)
	}
	if len(fields) == 0 {
		return e.ErrNotUpdated
	}
	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", update.ID).
		Updates(fields)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotUpdated
	}
	return nil
}

func (r *Repository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return e.ErrInvalidArguments
	}
	result := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// JobsByAddedBy returns jobs posted by the given user, oldest first so
// report row ordering is stable.
func (r *Repository) JobsByAddedBy(ctx context.Context, userID uuid.UUID) ([]models.Job, error) {
	if userID == uuid.Nil {
		return nil, e.ErrInvalidArguments
	}
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("added_by = ?", userID).
		Order("created_at asc").
		Find(&jobs).Error
	if err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

func (r *Repository) AllJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&jobs).Error
	if err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

// FilterJobs returns jobs matching the filter, newest first. Scalar fields
// narrow the query; the technical-skill overlap is applied on the serialized
// column after the fetch.
func (r *Repository) FilterJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{})
	if filter.WorkingTime != "" {
		query = query.Where("working_time = ?", filter.WorkingTime)
	}
	if filter.JobLocation != "" {
		query = query.Where("job_location = ?", filter.JobLocation)
	}
	if filter.SeniorityLevel != "" {
		query = query.Where("seniority_level = ?", filter.SeniorityLevel)
	}
	if filter.JobTitle != "" {
		query = query.Where("job_title = ?", filter.JobTitle)
	}

	var jobs []models.Job
	if err := query.Order("created_at desc").Find(&jobs).Error; err != nil {
		return nil, translate(err)
	}
	if len(filter.TechnicalSkills) == 0 {
		return jobs, nil
	}

	matched := jobs[:0]
	for _, job := range jobs {
		if overlaps(job.TechnicalSkills, filter.TechnicalSkills) {
			matched = append(matched, job)
		}
	}
	return matched, nil
}

func overlaps(have, want []string) bool {
	for _, skill := range want {
		if slices.Contains(have, skill) {
			return true
		}
	}
	return false
}
