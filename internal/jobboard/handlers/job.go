package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	"github.com/gartstein/jobboard/internal/jobboard/controller"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gartstein/jobboard/internal/jobboard/validation"
)

// JobController is the job surface the job handlers depend on.
type JobController interface {
	Add(ctx context.Context, hrID uuid.UUID, job *models.Job) (*models.Job, error)
	Update(ctx context.Context, actorID uuid.UUID, update *models.JobUpdate) (*models.Job, error)
	Delete(ctx context.Context, actorID, jobID uuid.UUID) error
	AllWithCompany(ctx context.Context) ([]models.JobWithCompany, error)
	ForCompany(ctx context.Context, companyName string) (*models.Company, []models.Job, error)
	Filter(ctx context.Context, filter models.JobFilter) ([]models.Job, error)
	Apply(ctx context.Context, userID, jobID uuid.UUID, techSkills, softSkills []string, resume *controller.Resume) (*models.Application, error)
}

// JobHandler serves the /job endpoint family.
type JobHandler struct {
	jobs   JobController
	logger *zap.Logger
}

func NewJobHandler(jobs JobController, logger *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger.Named("job_handler")}
}

type addJobRequest struct {
	JobTitle        string   `json:"jobTitle" binding:"required,min=2,max=100"`
	JobLocation     string   `json:"jobLocation" binding:"required,oneof=onsite remotely hybrid"`
	WorkingTime     string   `json:"workingTime" binding:"required,oneof=part-time full-time"`
	SeniorityLevel  string   `json:"seniorityLevel" binding:"required,oneof=Junior Mid-Level Senior Team-Lead CTO"`
	JobDescription  string   `json:"jobDescription" binding:"required,max=3000"`
	TechnicalSkills []string `json:"technicalSkills" binding:"required,min=1"`
	SoftSkills      []string `json:"softSkills" binding:"required,min=1"`
}

// Add posts a new job owned by the calling HR account.
func (h *JobHandler) Add(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var req addJobRequest
	if !validation.Bind(c, validation.Parts{Body: &req}) {
		return
	}

	job, err := h.jobs.Add(c.Request.Context(), identity.ID, &models.Job{
		JobTitle:        req.JobTitle,
		JobLocation:     models.JobLocation(req.JobLocation),
		WorkingTime:     models.WorkingTime(req.WorkingTime),
		SeniorityLevel:  models.SeniorityLevel(req.SeniorityLevel),
		JobDescription:  req.JobDescription,
		TechnicalSkills: req.TechnicalSkills,
		SoftSkills:      req.SoftSkills,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "job added successfully", gin.H{"job": job})
}

type jobIDParam struct {
	JobID string `uri:"jobId" binding:"required,uuid"`
}

type updateJobRequest struct {
	JobTitle        *string   `json:"jobTitle" binding:"omitempty,min=2,max=100"`
	JobLocation     *string   `json:"jobLocation" binding:"omitempty,oneof=onsite remotely hybrid"`
	WorkingTime     *string   `json:"workingTime" binding:"omitempty,oneof=part-time full-time"`
	SeniorityLevel  *string   `json:"seniorityLevel" binding:"omitempty,oneof=Junior Mid-Level Senior Team-Lead CTO"`
	JobDescription  *string   `json:"jobDescription" binding:"omitempty,max=3000"`
	TechnicalSkills *[]string `json:"technicalSkills" binding:"omitempty,min=1"`
	SoftSkills      *[]string `json:"softSkills" binding:"omitempty,min=1"`
}

// Update changes a job; only the HR who posted it may do so.
func (h *JobHandler) Update(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var params jobIDParam
	var req updateJobRequest
	if !validation.Bind(c, validation.Parts{URI: &params, Body: &req}) {
		return
	}

	update := models.JobUpdate{
		ID:              uuid.MustParse(params.JobID),
		JobTitle:        req.JobTitle,
		JobDescription:  req.JobDescription,
		TechnicalSkills: req.TechnicalSkills,
		SoftSkills:      req.SoftSkills,
	}
	if req.JobLocation != nil {
		loc := models.JobLocation(*req.JobLocation)
		update.JobLocation = &loc
	}
	if req.WorkingTime != nil {
		wt := models.WorkingTime(*req.WorkingTime)
		update.WorkingTime = &wt
	}
	if req.SeniorityLevel != nil {
		lvl := models.SeniorityLevel(*req.SeniorityLevel)
		update.SeniorityLevel = &lvl
	}

	job, err := h.jobs.Update(c.Request.Context(), identity.ID, &update)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "job updated successfully", gin.H{"job": job})
}

// Delete removes a job; only the HR who posted it may do so.
func (h *JobHandler) Delete(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var params jobIDParam
	if !validation.Bind(c, validation.Parts{URI: &params}) {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), identity.ID, uuid.MustParse(params.JobID)); err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "job deleted successfully", nil)
}

// AllWithCompany lists every job with its poster's company records.
func (h *JobHandler) AllWithCompany(c *gin.Context) {
	jobs, err := h.jobs.AllWithCompany(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "all jobs", gin.H{"jobs": jobs})
}

// ForCompany lists the jobs posted by a named company's HR.
func (h *JobHandler) ForCompany(c *gin.Context) {
	var query companyNameQuery
	if !validation.Bind(c, validation.Parts{Query: &query}) {
		return
	}

	company, jobs, err := h.jobs.ForCompany(c.Request.Context(), query.Name)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "company jobs", gin.H{
		"company": company,
		"jobs":    jobs,
	})
}

type jobFilterQuery struct {
	WorkingTime     string `form:"workingTime" binding:"omitempty,oneof=part-time full-time"`
	JobLocation     string `form:"jobLocation" binding:"omitempty,oneof=onsite remotely hybrid"`
	SeniorityLevel  string `form:"seniorityLevel" binding:"omitempty,oneof=Junior Mid-Level Senior Team-Lead CTO"`
	JobTitle        string `form:"jobTitle" binding:"omitempty"`
	TechnicalSkills string `form:"technicalSkills" binding:"omitempty"`
}

// Filter lists jobs matching the given query filters; technicalSkills is a
// comma-separated list matched as any-overlap.
func (h *JobHandler) Filter(c *gin.Context) {
	var query jobFilterQuery
	if !validation.Bind(c, validation.Parts{Query: &query}) {
		return
	}

	filter := models.JobFilter{
		WorkingTime:    models.WorkingTime(query.WorkingTime),
		JobLocation:    models.JobLocation(query.JobLocation),
		SeniorityLevel: models.SeniorityLevel(query.SeniorityLevel),
		JobTitle:       query.JobTitle,
	}
	if query.TechnicalSkills != "" {
		filter.TechnicalSkills = splitSkills(query.TechnicalSkills)
	}

	jobs, err := h.jobs.Filter(c.Request.Context(), filter)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "matching jobs", gin.H{"jobs": jobs})
}

type applyJobForm struct {
	JobID          string `form:"jobId" binding:"required,uuid"`
	UserTechSkills string `form:"userTechSkills" binding:"required"`
	UserSoftSkills string `form:"userSoftSkills" binding:"required"`
}

// Apply submits an application with the resume as the multipart "resume"
// file field; skills arrive as comma-separated form fields.
func (h *JobHandler) Apply(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var form applyJobForm
	if !validation.Bind(c, validation.Parts{Form: &form}) {
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		fail(c, h.logger, fmt.Errorf("%w: please upload your resume", e.ErrInvalidArguments))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		fail(c, h.logger, fmt.Errorf("%w: unreadable resume upload", e.ErrInvalidArguments))
		return
	}
	defer file.Close()

	application, err := h.jobs.Apply(c.Request.Context(),
		identity.ID,
		uuid.MustParse(form.JobID),
		splitSkills(form.UserTechSkills),
		splitSkills(form.UserSoftSkills),
		&controller.Resume{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Body:        file,
		},
	)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "application submitted successfully", gin.H{"application": application})
}

func splitSkills(raw string) []string {
	var skills []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
