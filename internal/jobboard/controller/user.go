package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/events"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// TokenConfig carries the signing material for the two token kinds.
type TokenConfig struct {
	LoginSecret string
	ResetSecret string
}

// UserService manages accounts: registration, sessions and password flows.
type UserService struct {
	repo     Repository
	producer EventProducer
	tokens   TokenConfig
	logger   *zap.Logger
}

func NewUserService(repo Repository, producer EventProducer, tokens TokenConfig, logger *zap.Logger) *UserService {
	return &UserService{
		repo:     repo,
		producer: producer,
		tokens:   tokens,
		logger:   logger.Named("user_service"),
	}
}

// SignUp registers a new account. Email and mobile number must be free,
// the password is stored only as a bcrypt hash and the username is derived
// from the name fields.
func (s *UserService) SignUp(ctx context.Context, user *models.User) (*models.User, error) {
	emailTaken, err := s.repo.UserExistsByEmail(ctx, strings.ToLower(user.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if emailTaken {
		return nil, fmt.Errorf("%w: email already exists", e.ErrConflict)
	}

	mobileTaken, err := s.repo.UserExistsByMobile(ctx, user.MobileNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check mobile existence: %w", err)
	}
	if mobileTaken {
		return nil, fmt.Errorf("%w: mobile number already exists", e.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.ID = uuid.New()
	user.Email = strings.ToLower(user.Email)
	user.Password = string(hash)
	user.Username = user.FirstName + " " + user.LastName
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusOffline
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	go func() {
		s.producer.Produce(events.UserRegistered, user.ID.String(), user.Public())
	}()
	return user, nil
}

// SignIn verifies credentials (email or mobile number plus password),
// issues a session token and flips the account status to online.
func (s *UserService) SignIn(ctx context.Context, email, mobile, password string) (string, *models.User, error) {
	user, err := s.repo.GetUserByEmailOrMobile(ctx, strings.ToLower(email), mobile)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid login credentials", e.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid login credentials", e.ErrNotFound)
	}

	token, err := auth.IssueSessionToken(user, s.tokens.LoginSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.repo.SetUserStatus(ctx, user.ID, models.StatusOnline); err != nil {
		return "", nil, fmt.Errorf("failed to set status: %w", err)
	}
	user.Status = models.StatusOnline
	return token, user, nil
}

// Update applies a partial self-update. Omitted fields keep their previous
// values; a changed email or mobile number must not collide with another
// account; the username is re-derived from the resulting name fields.
func (s *UserService) Update(ctx context.Context, update *models.UserUpdate) (*models.User, error) {
	if update.Email != nil {
		taken, err := s.repo.UserExistsByEmail(ctx, strings.ToLower(*update.Email))
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: email already exists", e.ErrConflict)
		}
	}
	if update.MobileNumber != nil {
		taken, err := s.repo.UserExistsByMobile(ctx, *update.MobileNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to check mobile existence: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: mobile number already exists", e.ErrConflict)
		}
	}

	user, err := s.repo.GetUser(ctx, update.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", e.ErrNotFound)
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = strings.ToLower(*update.Email)
	}
	if update.MobileNumber != nil {
		user.MobileNumber = *update.MobileNumber
	}
	if update.RecoveryEmail != nil {
		user.RecoveryEmail = *update.RecoveryEmail
	}
	if update.DateOfBirth != nil {
		user.DateOfBirth = *update.DateOfBirth
	}
	user.Username = user.FirstName + " " + user.LastName

	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	go func() {
		s.producer.Produce(events.UserUpdated, user.ID.String(), user.Public())
	}()
	return user, nil
}

// Delete removes the account permanently.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	go func() {
		s.producer.Produce(events.UserDeleted, id.String(), nil)
	}()
	return nil
}

// Get returns the full account record of the authenticated user.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", e.ErrNotFound)
	}
	return user, nil
}

// PublicProfile returns the reduced projection exposed without auth.
func (s *UserService) PublicProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", e.ErrNotFound)
	}
	profile := user.Public()
	return &profile, nil
}

// UpdatePassword verifies the old password before storing the new hash.
func (s *UserService) UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", e.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return nil, fmt.Errorf("%w: invalid old password", e.ErrNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.SetUserPassword(ctx, id, string(hash)); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	user.Password = string(hash)
	return user, nil
}

// ForgetPassword issues a one-time code embedded in a 15-minute reset token.
// Both are returned to the caller, which matches the documented contract but
// defeats out-of-band code delivery; see the security note in the design doc.
func (s *UserService) ForgetPassword(ctx context.Context, email, mobile string) (otp, resetToken string, err error) {
	user, err := s.repo.GetUserByEmailOrMobile(ctx, strings.ToLower(email), mobile)
	if err != nil {
		return "", "", fmt.Errorf("%w: user not found", e.ErrNotFound)
	}

	otp, err = auth.GenerateOTP()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate code: %w", err)
	}
	resetToken, err = auth.IssueResetToken(user, otp, s.tokens.ResetSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return otp, resetToken, nil
}

// ResetPassword consumes a still-valid reset token plus the matching code
// and overwrites the password hash. An expired token or a code mismatch
// fails without touching the stored hash.
func (s *UserService) ResetPassword(ctx context.Context, resetToken, otp, newPassword string) error {
	claims, err := auth.VerifyResetToken(resetToken, s.tokens.ResetSecret)
	if err != nil {
		return fmt.Errorf("%w: invalid or expired reset token", e.ErrNotFound)
	}
	if claims.UserID == uuid.Nil {
		return fmt.Errorf("%w: invalid reset token payload", e.ErrNotFound)
	}
	if claims.OTP != otp {
		return fmt.Errorf("%w: invalid OTP", e.ErrNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.SetUserPassword(ctx, claims.UserID, string(hash)); err != nil {
		return fmt.Errorf("%w: failed to reset the password", e.ErrNotFound)
	}
	return nil
}

// AccountsByRecoveryEmail lists the public projections of every account
// registered with the given recovery email.
func (s *UserService) AccountsByRecoveryEmail(ctx context.Context, recoveryEmail string) ([]models.PublicProfile, error) {
	users, err := s.repo.FindUsersByRecoveryEmail(ctx, recoveryEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return profiles, nil
}
