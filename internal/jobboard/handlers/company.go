package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gartstein/jobboard/internal/jobboard/validation"
)

// CompanyController is the company surface the company handlers depend on.
type CompanyController interface {
	Add(ctx context.Context, hrID uuid.UUID, company *models.Company) (*models.Company, error)
	Update(ctx context.Context, actorID uuid.UUID, update *models.CompanyUpdate) (*models.Company, error)
	Delete(ctx context.Context, actorID, companyID uuid.UUID) error
	GetData(ctx context.Context, companyID uuid.UUID) (*models.Company, []models.Job, error)
	SearchByName(ctx context.Context, name string) (*models.Company, error)
	ApplicationsForJobs(ctx context.Context, actorID uuid.UUID, companyName string) ([]models.JobApplications, error)
	ApplicationsReport(ctx context.Context, actorID uuid.UUID, companyName, date string) (string, error)
}

// CompanyHandler serves the /company endpoint family.
type CompanyHandler struct {
	companies CompanyController
	logger    *zap.Logger
}

func NewCompanyHandler(companies CompanyController, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{companies: companies, logger: logger.Named("company_handler")}
}

type addCompanyRequest struct {
	CompanyName       string `json:"companyName" binding:"required,min=2,max=100"`
	Description       string `json:"description" binding:"required,max=3000"`
	Industry          string `json:"industry" binding:"required"`
	Address           string `json:"address" binding:"required"`
	NumberOfEmployees string `json:"numberOfEmployees" binding:"required"`
	CompanyEmail      string `json:"companyEmail" binding:"required,email"`
}

// Add creates a company owned by the calling HR account.
func (h *CompanyHandler) Add(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var req addCompanyRequest
	if !validation.Bind(c, validation.Parts{Body: &req}) {
		return
	}

	company, err := h.companies.Add(c.Request.Context(), identity.ID, &models.Company{
		CompanyName:       req.CompanyName,
		Description:       req.Description,
		Industry:          req.Industry,
		Address:           req.Address,
		NumberOfEmployees: req.NumberOfEmployees,
		CompanyEmail:      req.CompanyEmail,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "company added successfully", gin.H{"company": company})
}

type companyIDParam struct {
	CompanyID string `uri:"companyId" binding:"required,uuid"`
}

type updateCompanyRequest struct {
	CompanyName       *string `json:"companyName" binding:"omitempty,min=2,max=100"`
	Description       *string `json:"description" binding:"omitempty,max=3000"`
	Industry          *string `json:"industry" binding:"omitempty"`
	Address           *string `json:"address" binding:"omitempty"`
	NumberOfEmployees *string `json:"numberOfEmployees" binding:"omitempty"`
	CompanyEmail      *string `json:"companyEmail" binding:"omitempty,email"`
}

// Update changes a company; only its owning HR may do so.
func (h *CompanyHandler) Update(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var params companyIDParam
	var req updateCompanyRequest
	if !validation.Bind(c, validation.Parts{URI: &params, Body: &req}) {
		return
	}

	company, err := h.companies.Update(c.Request.Context(), identity.ID, &models.CompanyUpdate{
		ID:                uuid.MustParse(params.CompanyID),
		CompanyName:       req.CompanyName,
		Description:       req.Description,
		Industry:          req.Industry,
		Address:           req.Address,
		NumberOfEmployees: req.NumberOfEmployees,
		CompanyEmail:      req.CompanyEmail,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "company updated successfully", gin.H{"company": company})
}

// Delete removes a company; only its owning HR may do so.
func (h *CompanyHandler) Delete(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var params companyIDParam
	if !validation.Bind(c, validation.Parts{URI: &params}) {
		return
	}

	if err := h.companies.Delete(c.Request.Context(), identity.ID, uuid.MustParse(params.CompanyID)); err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "company deleted successfully", nil)
}

// GetData returns a company together with the jobs its HR posted.
func (h *CompanyHandler) GetData(c *gin.Context) {
	var params companyIDParam
	if !validation.Bind(c, validation.Parts{URI: &params}) {
		return
	}

	company, jobs, err := h.companies.GetData(c.Request.Context(), uuid.MustParse(params.CompanyID))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "company data", gin.H{
		"company": company,
		"jobs":    jobs,
	})
}

type companyNameQuery struct {
	Name string `form:"name" binding:"required"`
}

// SearchByName looks a company up by its exact name.
func (h *CompanyHandler) SearchByName(c *gin.Context) {
	var query companyNameQuery
	if !validation.Bind(c, validation.Parts{Query: &query}) {
		return
	}

	company, err := h.companies.SearchByName(c.Request.Context(), query.Name)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "company found", gin.H{"company": company})
}

type companyNameParam struct {
	CompanyName string `uri:"companyName" binding:"required"`
}

// ApplicationsForJobs lists every application to the caller's jobs, with the
// applicants joined in.
func (h *CompanyHandler) ApplicationsForJobs(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var params companyNameParam
	if !validation.Bind(c, validation.Parts{URI: &params}) {
		return
	}

	jobs, err := h.companies.ApplicationsForJobs(c.Request.Context(), identity.ID, params.CompanyName)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "job applications", gin.H{"jobs": jobs})
}

type reportParams struct {
	CompanyName string `uri:"companyName" binding:"required"`
	Date        string `uri:"date" binding:"required,datetime=2006-01-02"`
}

// ApplicationsReport exports the day's applications to an xlsx workbook and
// reports where the file was written.
func (h *CompanyHandler) ApplicationsReport(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var params reportParams
	if !validation.Bind(c, validation.Parts{URI: &params}) {
		return
	}

	path, err := h.companies.ApplicationsReport(c.Request.Context(), identity.ID, params.CompanyName, params.Date)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "excel file created", gin.H{"excelFilePath": path})
}
