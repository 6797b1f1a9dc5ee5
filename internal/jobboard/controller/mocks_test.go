package controller

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// MockRepository implements the Repository interface for testing. Tests set
// only the function fields their flow touches; an unset field panics, which
// flags an unexpected call.
type MockRepository struct {
	createUser               func(context.Context, *models.User) error
	getUser                  func(context.Context, uuid.UUID) (*models.User, error)
	getUserByEmailOrMobile   func(context.Context, string, string) (*models.User, error)
	userExistsByEmail        func(context.Context, string) (bool, error)
	userExistsByMobile       func(context.Context, string) (bool, error)
	saveUser                 func(context.Context, *models.User) error
	setUserStatus            func(context.Context, uuid.UUID, models.Status) error
	setUserPassword          func(context.Context, uuid.UUID, string) error
	deleteUser               func(context.Context, uuid.UUID) error
	findUsersByRecoveryEmail func(context.Context, string) ([]models.User, error)

	createCompany        func(context.Context, *models.Company) error
	getCompany           func(context.Context, uuid.UUID) (*models.Company, error)
	getCompanyByName     func(context.Context, string) (*models.Company, error)
	updateCompany        func(context.Context, *models.CompanyUpdate) error
	deleteCompany        func(context.Context, uuid.UUID) error
	companyExistsByName  func(context.Context, string) (bool, error)
	companyExistsByEmail func(context.Context, string) (bool, error)
	companiesByHR        func(context.Context, uuid.UUID) ([]models.Company, error)

	createJob     func(context.Context, *models.Job) error
	getJob        func(context.Context, uuid.UUID) (*models.Job, error)
	updateJob     func(context.Context, *models.JobUpdate) error
	deleteJob     func(context.Context, uuid.UUID) error
	jobsByAddedBy func(context.Context, uuid.UUID) ([]models.Job, error)
	allJobs       func(context.Context) ([]models.Job, error)
	filterJobs    func(context.Context, models.JobFilter) ([]models.Job, error)

	createApplication      func(context.Context, *models.Application) error
	applicationsByJob      func(context.Context, uuid.UUID) ([]models.Application, error)
	applicationsByJobOnDay func(context.Context, uuid.UUID, time.Time) ([]models.Application, error)
}

func (m *MockRepository) CreateUser(ctx context.Context, u *models.User) error {
	return m.createUser(ctx, u)
}

func (m *MockRepository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.getUser(ctx, id)
}

func (m *MockRepository) GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	return m.getUserByEmailOrMobile(ctx, email, mobile)
}

func (m *MockRepository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.userExistsByEmail(ctx, email)
}

func (m *MockRepository) UserExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	return m.userExistsByMobile(ctx, mobile)
}

func (m *MockRepository) SaveUser(ctx context.Context, u *models.User) error {
	return m.saveUser(ctx, u)
}

func (m *MockRepository) SetUserStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	return m.setUserStatus(ctx, id, status)
}

func (m *MockRepository) SetUserPassword(ctx context.Context, id uuid.UUID, hash string) error {
	return m.setUserPassword(ctx, id, hash)
}

func (m *MockRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.deleteUser(ctx, id)
}

func (m *MockRepository) FindUsersByRecoveryEmail(ctx context.Context, recoveryEmail string) ([]models.User, error) {
	return m.findUsersByRecoveryEmail(ctx, recoveryEmail)
}

func (m *MockRepository) CreateCompany(ctx context.Context, c *models.Company) error {
	return m.createCompany(ctx, c)
}

func (m *MockRepository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return m.getCompany(ctx, id)
}

func (m *MockRepository) GetCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	return m.getCompanyByName(ctx, name)
}

func (m *MockRepository) UpdateCompany(ctx context.Context, u *models.CompanyUpdate) error {
	return m.updateCompany(ctx, u)
}

func (m *MockRepository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return m.deleteCompany(ctx, id)
}

func (m *MockRepository) CompanyExistsByName(ctx context.Context, name string) (bool, error) {
	return m.companyExistsByName(ctx, name)
}

func (m *MockRepository) CompanyExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.companyExistsByEmail(ctx, email)
}

func (m *MockRepository) CompaniesByHR(ctx context.Context, hrID uuid.UUID) ([]models.Company, error) {
	return m.companiesByHR(ctx, hrID)
}

func (m *MockRepository) CreateJob(ctx context.Context, j *models.Job) error {
	return m.createJob(ctx, j)
}

func (m *MockRepository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.getJob(ctx, id)
}

func (m *MockRepository) UpdateJob(ctx context.Context, u *models.JobUpdate) error {
	return m.updateJob(ctx, u)
}

func (m *MockRepository) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return m.deleteJob(ctx, id)
}

func (m *MockRepository) JobsByAddedBy(ctx context.Context, userID uuid.UUID) ([]models.Job, error) {
	return m.jobsByAddedBy(ctx, userID)
}

func (m *MockRepository) AllJobs(ctx context.Context) ([]models.Job, error) {
	return m.allJobs(ctx)
}

func (m *MockRepository) FilterJobs(ctx context.Context, filter models.JobFilter) ([]models.Job, error) {
	return m.filterJobs(ctx, filter)
}

func (m *MockRepository) CreateApplication(ctx context.Context, a *models.Application) error {
	return m.createApplication(ctx, a)
}

func (m *MockRepository) ApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	return m.applicationsByJob(ctx, jobID)
}

func (m *MockRepository) ApplicationsByJobOnDay(ctx context.Context, jobID uuid.UUID, day time.Time) ([]models.Application, error) {
	return m.applicationsByJobOnDay(ctx, jobID, day)
}

// producedEvent records one Produce call.
type producedEvent struct {
	Type     events.EventType
	EntityID string
	Payload  any
}

// MockProducer is a test double for the Kafka producer. Events are produced
// from goroutines, so access is guarded and a wait group lets tests block
// until the expected publications happened.
type MockProducer struct {
	mu     sync.Mutex
	events []producedEvent
	wg     *sync.WaitGroup
}

func (m *MockProducer) Produce(eventType events.EventType, entityID string, payload any) {
	m.mu.Lock()
	m.events = append(m.events, producedEvent{eventType, entityID, payload})
	m.mu.Unlock()
	if m.wg != nil {
		m.wg.Done()
	}
}

func (m *MockProducer) Events() []producedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]producedEvent(nil), m.events...)
}

// MockResumeStore is a test double for the resume object store.
type MockResumeStore struct {
	upload  func(context.Context, uuid.UUID, string, string, io.Reader, int64, string) (models.ResumeFile, error)
	remove  func(context.Context, string) error
	removed []string
}

func (m *MockResumeStore) Upload(ctx context.Context, userID uuid.UUID, batchID, filename string, body io.Reader, size int64, contentType string) (models.ResumeFile, error) {
	return m.upload(ctx, userID, batchID, filename, body, size, contentType)
}

func (m *MockResumeStore) Remove(ctx context.Context, storageKey string) error {
	m.removed = append(m.removed, storageKey)
	if m.remove != nil {
		return m.remove(ctx, storageKey)
	}
	return nil
}

// MockExporter is a test double for the report exporter.
type MockExporter struct {
	export func(string, string, []models.JobApplications) (string, error)
}

func (m *MockExporter) Export(companyName, date string, groups []models.JobApplications) (string, error) {
	return m.export(companyName, date, groups)
}
