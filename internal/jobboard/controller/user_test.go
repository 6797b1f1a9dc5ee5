package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gartstein/jobboard/internal/pkg/utils"
)

var testTokens = TokenConfig{
	LoginSecret: "test-login-secret",
	ResetSecret: "test-reset-secret",
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestUserService_SignUp(t *testing.T) {
	tests := []struct {
		name        string
		input       *models.User
		mockSetup   func(*MockRepository)
		expectError error
	}{
		{
			name: "successful registration",
			input: &models.User{
				FirstName:    "Ada",
				LastName:     "Lovelace",
				Email:        "Ada@Example.com",
				Password:     "s3cretpass",
				MobileNumber: "01001234567",
			},
			mockSetup: func(mr *MockRepository) {
				mr.userExistsByEmail = func(_ context.Context, _ string) (bool, error) { return false, nil }
				mr.userExistsByMobile = func(_ context.Context, _ string) (bool, error) { return false, nil }
				mr.createUser = func(_ context.Context, _ *models.User) error { return nil }
			},
		},
		{
			name: "email already taken",
			input: &models.User{
				FirstName:    "Ada",
				LastName:     "Lovelace",
				Email:        "taken@example.com",
				Password:     "s3cretpass",
				MobileNumber: "01001234567",
			},
			mockSetup: func(mr *MockRepository) {
				mr.userExistsByEmail = func(_ context.Context, _ string) (bool, error) { return true, nil }
			},
			expectError: e.ErrConflict,
		},
		{
			name: "mobile already taken",
			input: &models.User{
				FirstName:    "Ada",
				LastName:     "Lovelace",
				Email:        "free@example.com",
				Password:     "s3cretpass",
				MobileNumber: "01001234567",
			},
			mockSetup: func(mr *MockRepository) {
				mr.userExistsByEmail = func(_ context.Context, _ string) (bool, error) { return false, nil }
				mr.userExistsByMobile = func(_ context.Context, _ string) (bool, error) { return true, nil }
			},
			expectError: e.ErrConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{}
			producer := &MockProducer{}
			tt.mockSetup(repo)
			if tt.expectError == nil {
				wg := &sync.WaitGroup{}
				wg.Add(1)
				producer.wg = wg
				defer wg.Wait()
			}

			svc := NewUserService(repo, producer, testTokens, zaptest.NewLogger(t))
			user, err := svc.SignUp(context.Background(), tt.input)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID, "an id should be assigned")
			assert.Equal(t, "ada@example.com", user.Email, "email should be lowercased")
			assert.Equal(t, "Ada Lovelace", user.Username, "username should derive from the name")
			assert.Equal(t, models.RoleUser, user.Role, "role should default to User")
			assert.Equal(t, models.StatusOffline, user.Status, "status should default to offline")
			assert.NotEqual(t, "s3cretpass", user.Password, "the plain password must not be stored")
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cretpass")),
				"the stored hash should verify against the original password")
		})
	}
}

func TestUserService_SignIn(t *testing.T) {
	userID := uuid.New()
	stored := &models.User{
		ID:           userID,
		Email:        "ada@example.com",
		MobileNumber: "01001234567",
		Status:       models.StatusOffline,
	}

	t.Run("successful sign in", func(t *testing.T) {
		stored := *stored
		stored.Password = hashOf(t, "s3cretpass")

		var statusSet models.Status
		repo := &MockRepository{
			getUserByEmailOrMobile: func(_ context.Context, email, _ string) (*models.User, error) {
				assert.Equal(t, "ada@example.com", email)
				return &stored, nil
			},
			setUserStatus: func(_ context.Context, id uuid.UUID, status models.Status) error {
				assert.Equal(t, userID, id)
				statusSet = status
				return nil
			},
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		token, user, err := svc.SignIn(context.Background(), "Ada@Example.com", "", "s3cretpass")
		require.NoError(t, err)
		assert.Equal(t, models.StatusOnline, statusSet, "sign-in should flip the status to online")
		assert.Equal(t, models.StatusOnline, user.Status)

		claims, err := auth.VerifySessionToken(token, testTokens.LoginSecret)
		require.NoError(t, err, "the issued token should verify")
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
		assert.Equal(t, "01001234567", claims.MobileNumber)
	})

	t.Run("wrong password", func(t *testing.T) {
		stored := *stored
		stored.Password = hashOf(t, "s3cretpass")
		repo := &MockRepository{
			getUserByEmailOrMobile: func(_ context.Context, _, _ string) (*models.User, error) {
				return &stored, nil
			},
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		_, _, err := svc.SignIn(context.Background(), "ada@example.com", "", "wrong")
		assert.ErrorIs(t, err, e.ErrNotFound, "a bad password should not reveal the account")
	})

	t.Run("unknown account", func(t *testing.T) {
		repo := &MockRepository{
			getUserByEmailOrMobile: func(_ context.Context, _, _ string) (*models.User, error) {
				return nil, e.ErrNotFound
			},
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		_, _, err := svc.SignIn(context.Background(), "nobody@example.com", "", "whatever")
		assert.ErrorIs(t, err, e.ErrNotFound)
	})
}

func TestUserService_Update(t *testing.T) {
	userID := uuid.New()

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		stored := &models.User{
			ID:            userID,
			FirstName:     "Ada",
			LastName:      "Lovelace",
			Username:      "Ada Lovelace",
			Email:         "ada@example.com",
			MobileNumber:  "01001234567",
			RecoveryEmail: "backup@example.com",
		}
		var saved *models.User
		repo := &MockRepository{
			getUser: func(_ context.Context, id uuid.UUID) (*models.User, error) {
				assert.Equal(t, userID, id)
				copy := *stored
				return &copy, nil
			},
			saveUser: func(_ context.Context, u *models.User) error {
				saved = u
				return nil
			},
		}
		wg := &sync.WaitGroup{}
		wg.Add(1)
		producer := &MockProducer{wg: wg}
		svc := NewUserService(repo, producer, testTokens, zaptest.NewLogger(t))

		updated, err := svc.Update(context.Background(), &models.UserUpdate{
			ID:        userID,
			FirstName: utils.Ptr("Augusta"),
		})
		require.NoError(t, err)
		wg.Wait()

		assert.Equal(t, "Augusta", updated.FirstName)
		assert.Equal(t, "Lovelace", updated.LastName, "omitted fields keep their values")
		assert.Equal(t, "ada@example.com", updated.Email)
		assert.Equal(t, "Augusta Lovelace", updated.Username, "username should be re-derived")
		require.NotNil(t, saved)
		assert.Equal(t, "Augusta", saved.FirstName)

		produced := producer.Events()
		require.Len(t, produced, 1)
		assert.Equal(t, events.UserUpdated, produced[0].Type)
	})

	t.Run("changed email collides", func(t *testing.T) {
		repo := &MockRepository{
			userExistsByEmail: func(_ context.Context, _ string) (bool, error) { return true, nil },
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		_, err := svc.Update(context.Background(), &models.UserUpdate{
			ID:    userID,
			Email: utils.Ptr("taken@example.com"),
		})
		assert.ErrorIs(t, err, e.ErrConflict)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	userID := uuid.New()

	t.Run("wrong old password leaves the hash alone", func(t *testing.T) {
		stored := &models.User{ID: userID, Password: hashOf(t, "oldpass")}
		repo := &MockRepository{
			getUser: func(_ context.Context, _ uuid.UUID) (*models.User, error) { return stored, nil },
			setUserPassword: func(_ context.Context, _ uuid.UUID, _ string) error {
				t.Fatal("the stored hash must not change on a failed check")
				return nil
			},
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		_, err := svc.UpdatePassword(context.Background(), userID, "not-the-old-one", "newpass123")
		assert.ErrorIs(t, err, e.ErrNotFound)
	})

	t.Run("successful change stores a new hash", func(t *testing.T) {
		stored := &models.User{ID: userID, Password: hashOf(t, "oldpass")}
		var newHash string
		repo := &MockRepository{
			getUser: func(_ context.Context, _ uuid.UUID) (*models.User, error) { return stored, nil },
			setUserPassword: func(_ context.Context, id uuid.UUID, hash string) error {
				assert.Equal(t, userID, id)
				newHash = hash
				return nil
			},
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		_, err := svc.UpdatePassword(context.Background(), userID, "oldpass", "newpass123")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpass123")))
	})
}

func TestUserService_ResetPasswordFlow(t *testing.T) {
	userID := uuid.New()
	user := &models.User{ID: userID, Email: "ada@example.com", MobileNumber: "01001234567"}

	t.Run("issued code and token reset the password", func(t *testing.T) {
		var newHash string
		repo := &MockRepository{
			getUserByEmailOrMobile: func(_ context.Context, _, _ string) (*models.User, error) {
				return user, nil
			},
			setUserPassword: func(_ context.Context, id uuid.UUID, hash string) error {
				assert.Equal(t, userID, id)
				newHash = hash
				return nil
			},
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		otp, resetToken, err := svc.ForgetPassword(context.Background(), "ada@example.com", "")
		require.NoError(t, err)
		assert.Len(t, otp, auth.OTPLength)

		require.NoError(t, svc.ResetPassword(context.Background(), resetToken, otp, "brandnewpass"))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("brandnewpass")))
	})

	t.Run("wrong code fails without mutation", func(t *testing.T) {
		repo := &MockRepository{
			getUserByEmailOrMobile: func(_ context.Context, _, _ string) (*models.User, error) {
				return user, nil
			},
			setUserPassword: func(_ context.Context, _ uuid.UUID, _ string) error {
				t.Fatal("a code mismatch must not touch the stored hash")
				return nil
			},
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		otp, resetToken, err := svc.ForgetPassword(context.Background(), "ada@example.com", "")
		require.NoError(t, err)

		wrong := "00000"
		if otp == wrong {
			wrong = "11111"
		}
		err = svc.ResetPassword(context.Background(), resetToken, wrong, "brandnewpass")
		assert.ErrorIs(t, err, e.ErrNotFound)
	})

	t.Run("expired token fails without mutation", func(t *testing.T) {
		repo := &MockRepository{
			setUserPassword: func(_ context.Context, _ uuid.UUID, _ string) error {
				t.Fatal("an expired token must not touch the stored hash")
				return nil
			},
		}
		svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

		expired := expiredResetToken(t, user, "12345", testTokens.ResetSecret)
		err := svc.ResetPassword(context.Background(), expired, "12345", "brandnewpass")
		assert.ErrorIs(t, err, e.ErrNotFound)
	})
}

func TestUserService_AccountsByRecoveryEmail(t *testing.T) {
	repo := &MockRepository{
		findUsersByRecoveryEmail: func(_ context.Context, recoveryEmail string) ([]models.User, error) {
			assert.Equal(t, "backup@example.com", recoveryEmail)
			return []models.User{
				{Username: "Ada Lovelace", Email: "ada@example.com", Password: "hash"},
				{Username: "Alan Turing", Email: "alan@example.com", Password: "hash"},
			}, nil
		},
	}
	svc := NewUserService(repo, &MockProducer{}, testTokens, zaptest.NewLogger(t))

	profiles, err := svc.AccountsByRecoveryEmail(context.Background(), "backup@example.com")
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Ada Lovelace", profiles[0].Username)
}

// expiredResetToken signs a reset token whose expiry is already in the past.
func expiredResetToken(t *testing.T, user *models.User, otp, secret string) string {
	t.Helper()
	claims := auth.ResetClaims{
		UserID:       user.ID,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		OTP:          otp,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
