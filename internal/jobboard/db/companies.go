package db

import (
	"context"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/google/uuid"

	"github.com/gartstein/jobboard/internal/jobboard/models"
)

func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	if company == nil {
		return e.ErrInvalidArguments
	}
	return translate(r.db.WithContext(ctx).Create(company).Error)
}

func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	if id == uuid.Nil {
		return nil, e.ErrInvalidArguments
	}
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (r *Repository) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	if name == "" {
		return nil, e.ErrInvalidArguments
	}
	var company models.Company
	err := r.db.WithContext(ctx).
		Where("company_name = ?", name).
		First(&company).Error
	if err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

// UpdateCompany applies the non-nil fields of update. Matching nothing is a
// failed update, not a missing document.
func (r *Repository) UpdateCompany(ctx context.Context, update *models.CompanyUpdate) error {
	if update == nil || update.ID == uuid.Nil {
		return e.ErrInvalidArguments
	}
	result := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("id = ?", update.ID).
		Updates(update)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotUpdated
	}
	return nil
}

func (r *Repository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return e.ErrInvalidArguments
	}
	result := r.db.WithContext(ctx).Delete(&models.Company{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// CompaniesByHR returns the companies owned by the given HR user.
func (r *Repository) CompaniesByHR(ctx context.Context, hrID uuid.UUID) ([]models.Company, error) {
	if hrID == uuid.Nil {
		return nil, e.ErrInvalidArguments
	}
	var companies []models.Company
	err := r.db.WithContext(ctx).
		Where("company_hr = ?", hrID).
		Find(&companies).Error
	if err != nil {
		return nil, translate(err)
	}
	return companies, nil
}

func (r *Repository) CompanyExistsByName(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, e.ErrInvalidArguments
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("company_name = ?", name).
		Limit(1).
		Count(&count).Error
	return count > 0, translate(err)
}

func (r *Repository) CompanyExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, e.ErrInvalidArguments
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("company_email = ?", email).
		Limit(1).
		Count(&count).Error
	return count > 0, translate(err)
}
