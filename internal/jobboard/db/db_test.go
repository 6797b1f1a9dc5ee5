package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// SetupTestDB initializes an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, migrate(db), "failed to migrate test database")

	return &Repository{db: db}
}

func newTestUser(email, mobile string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Username:     "Ada Lovelace",
		Email:        email,
		Password:     "hashed",
		MobileNumber: mobile,
		DateOfBirth:  time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Role:         models.RoleUser,
		Status:       models.StatusOffline,
	}
}

func TestCreateUser(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	user := newTestUser("ada@example.com", "01001234567")
	require.NoError(t, repo.CreateUser(ctx, user), "CreateUser should succeed")

	retrieved, err := repo.GetUser(ctx, user.ID)
	assert.NoError(t, err, "GetUser should retrieve the created user")
	assert.Equal(t, user.Email, retrieved.Email, "email should match")
	assert.Equal(t, user.Username, retrieved.Username, "username should match")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, newTestUser("dup@example.com", "01001234567")))

	err := repo.CreateUser(ctx, newTestUser("dup@example.com", "01007654321"))
	assert.ErrorIs(t, err, e.ErrConflict, "duplicate email should map to ErrConflict")
}

func TestGetUserNotFound(t *testing.T) {
	repo := SetupTestDB(t)

	_, err := repo.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, e.ErrNotFound, "GetUser should return ErrNotFound for unknown id")
}

func TestGetUserByEmailOrMobile(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	user := newTestUser("login@example.com", "01001234567")
	require.NoError(t, repo.CreateUser(ctx, user))

	byEmail, err := repo.GetUserByEmailOrMobile(ctx, "login@example.com", "")
	assert.NoError(t, err, "lookup by email should succeed")
	assert.Equal(t, user.ID, byEmail.ID)

	byMobile, err := repo.GetUserByEmailOrMobile(ctx, "", "01001234567")
	assert.NoError(t, err, "lookup by mobile should succeed")
	assert.Equal(t, user.ID, byMobile.ID)

	_, err = repo.GetUserByEmailOrMobile(ctx, "missing@example.com", "")
	assert.ErrorIs(t, err, e.ErrNotFound, "miss should return ErrNotFound")

	_, err = repo.GetUserByEmailOrMobile(ctx, "", "")
	assert.ErrorIs(t, err, e.ErrInvalidArguments, "empty keys should be rejected")
}

func TestUserExists(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, newTestUser("exists@example.com", "01001234567")))

	exists, err := repo.UserExistsByEmail(ctx, "exists@example.com")
	assert.NoError(t, err)
	assert.True(t, exists, "existing email should be found")

	exists, err = repo.UserExistsByEmail(ctx, "other@example.com")
	assert.NoError(t, err)
	assert.False(t, exists, "unknown email should not be found")

	exists, err = repo.UserExistsByMobile(ctx, "01001234567")
	assert.NoError(t, err)
	assert.True(t, exists, "existing mobile should be found")
}

func TestSetUserStatus(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	user := newTestUser("status@example.com", "01001234567")
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, repo.SetUserStatus(ctx, user.ID, models.StatusOnline))

	retrieved, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnline, retrieved.Status, "status should be online")

	err = repo.SetUserStatus(ctx, uuid.New(), models.StatusOnline)
	assert.ErrorIs(t, err, e.ErrNotUpdated, "unknown id should map to ErrNotUpdated")
}

func TestSetUserPassword(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	user := newTestUser("pass@example.com", "01001234567")
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, repo.SetUserPassword(ctx, user.ID, "newhash"))

	retrieved, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", retrieved.Password)

	err = repo.SetUserPassword(ctx, uuid.New(), "newhash")
	assert.ErrorIs(t, err, e.ErrNotUpdated, "unknown id should map to ErrNotUpdated")
}

func TestDeleteUser(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	user := newTestUser("delete@example.com", "01001234567")
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	_, err := repo.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, e.ErrNotFound, "deleted user should not be retrievable")

	err = repo.DeleteUser(ctx, user.ID)
	assert.ErrorIs(t, err, e.ErrNotFound, "double delete should return ErrNotFound")
}

func TestFindUsersByRecoveryEmail(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	first := newTestUser("one@example.com", "01001234567")
	first.RecoveryEmail = "recovery@example.com"
	second := newTestUser("two@example.com", "01007654321")
	second.RecoveryEmail = "recovery@example.com"
	third := newTestUser("three@example.com", "01009876543")
	third.RecoveryEmail = "other@example.com"

	for _, u := range []*models.User{first, second, third} {
		require.NoError(t, repo.CreateUser(ctx, u))
	}

	users, err := repo.FindUsersByRecoveryEmail(ctx, "recovery@example.com")
	assert.NoError(t, err)
	assert.Len(t, users, 2, "both linked accounts should be returned")

	users, err = repo.FindUsersByRecoveryEmail(ctx, "unused@example.com")
	assert.NoError(t, err)
	assert.Empty(t, users, "no linked accounts is not an error")
}
