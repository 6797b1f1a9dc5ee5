package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// Server wraps the HTTP server and the gin router.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	logger     *zap.Logger
	endpoint   string
}

// NewServer builds the router with recovery installed so an unexpected
// panic inside a handler answers 500 instead of killing the process.
func NewServer(port int, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("handler panic",
			zap.Any("panic", recovered),
			zap.String("path", c.FullPath()),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message":     "internal failure",
			"errorDetail": "unexpected error",
		})
	}))

	endpoint := fmt.Sprintf(":%d", port)
	return &Server{
		httpServer: &http.Server{Addr: endpoint, Handler: engine},
		engine:     engine,
		logger:     logger,
		endpoint:   endpoint,
	}
}

// Register mounts the three endpoint families with their role gates.
func (s *Server) Register(verifier *auth.Verifier, users *UserHandler, companies *CompanyHandler, jobs *JobHandler) {
	anyAccount := verifier.Require(models.RoleUser, models.RoleCompanyHR)
	hrOnly := verifier.Require(models.RoleCompanyHR)
	userOnly := verifier.Require(models.RoleUser)

	user := s.engine.Group("/user")
	{
		user.POST("/sign-up", users.SignUp)
		user.POST("/sign-in", users.SignIn)
		user.PUT("/update", anyAccount, users.Update)
		user.DELETE("/delete", anyAccount, users.Delete)
		user.GET("/user-data", anyAccount, users.UserData)
		user.GET("/user-profile-data/:userID", users.PublicProfile)
		user.PATCH("/update-password", anyAccount, users.UpdatePassword)
		user.POST("/forget-password", users.ForgetPassword)
		user.PATCH("/reset-password", users.ResetPassword)
		user.GET("/get-accounts-with-recovery-email", hrOnly, users.AccountsByRecoveryEmail)
	}

	company := s.engine.Group("/company")
	{
		company.POST("/add-company", hrOnly, companies.Add)
		company.PUT("/update-company/:companyId", hrOnly, companies.Update)
		company.DELETE("/delete-company/:companyId", hrOnly, companies.Delete)
		company.GET("/get-company-data/:companyId", hrOnly, companies.GetData)
		company.GET("/search-company-name", anyAccount, companies.SearchByName)
		company.GET("/get-application-jobs/:companyName", hrOnly, companies.ApplicationsForJobs)
		company.GET("/get-applications-company-day/:companyName/:date", hrOnly, companies.ApplicationsReport)
	}

	job := s.engine.Group("/job")
	{
		job.POST("/add-job", hrOnly, jobs.Add)
		job.PUT("/update-job/:jobId", hrOnly, jobs.Update)
		job.DELETE("/delete-job/:jobId", hrOnly, jobs.Delete)
		job.GET("/get-all-jobs-with-company", anyAccount, jobs.AllWithCompany)
		job.GET("/get-all-jobs-specific-company", anyAccount, jobs.ForCompany)
		job.GET("/get-jobs-filters", anyAccount, jobs.Filter)
		job.POST("/apply-job", userOnly, jobs.Apply)
	}
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.endpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	s.logger.Info("Server stopped")
}

// Handler exposes the router, used by the handler tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
