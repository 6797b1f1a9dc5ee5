package db

import (
	"context"
	"time"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/google/uuid"

	"github.com/gartstein/jobboard/internal/jobboard/models"
)

func (r *Repository) CreateApplication(ctx context.Context, application *models.Application) error {
	if application == nil {
		return e.ErrInvalidArguments
	}
	return translate(r.db.WithContext(ctx).Create(application).Error)
}

func (r *Repository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return e.ErrInvalidArguments
	}
	result := r.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// ApplicationsByJob returns every application for the job, oldest first.
func (r *Repository) ApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	if jobID == uuid.Nil {
		return nil, e.ErrInvalidArguments
	}
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at asc").
		Find(&applications).Error
	if err != nil {
		return nil, translate(err)
	}
	return applications, nil
}

// ApplicationsByJobOnDay returns the job's applications submitted inside the
// half-open calendar-day window [startOfDay, startOfNextDay) containing day.
func (r *Repository) ApplicationsByJobOnDay(ctx context.Context, jobID uuid.UUID, day time.Time) ([]models.Application, error) {
	if jobID == uuid.Nil || day.IsZero() {
		return nil, e.ErrInvalidArguments
	}
	start, end := dayWindow(day)
	var applications []models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND created_at >= ? AND created_at < ?", jobID, start, end).
		Order("created_at asc").
		Find(&applications).Error
	if err != nil {
		return nil, translate(err)
	}
	return applications, nil
}
