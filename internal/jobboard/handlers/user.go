package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gartstein/jobboard/internal/jobboard/auth"
	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gartstein/jobboard/internal/jobboard/validation"
)

const dateLayout = "2006-01-02"

// UserController is the account surface the user handlers depend on.
type UserController interface {
	SignUp(ctx context.Context, user *models.User) (*models.User, error)
	SignIn(ctx context.Context, email, mobile, password string) (string, *models.User, error)
	Update(ctx context.Context, update *models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	PublicProfile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) (*models.User, error)
	ForgetPassword(ctx context.Context, email, mobile string) (otp, resetToken string, err error)
	ResetPassword(ctx context.Context, resetToken, otp, newPassword string) error
	AccountsByRecoveryEmail(ctx context.Context, recoveryEmail string) ([]models.PublicProfile, error)
}

// UserHandler serves the /user endpoint family.
type UserHandler struct {
	users  UserController
	logger *zap.Logger
}

func NewUserHandler(users UserController, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.Named("user_handler")}
}

type signUpRequest struct {
	FirstName     string `json:"firstName" binding:"required,min=2,max=30"`
	LastName      string `json:"lastName" binding:"required,min=2,max=30"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	RecoveryEmail string `json:"recoveryEmail" binding:"omitempty,email"`
	DateOfBirth   string `json:"DOB" binding:"required,datetime=2006-01-02"`
	MobileNumber  string `json:"mobileNumber" binding:"required,numeric,min=7,max=15"`
	Role          string `json:"role" binding:"omitempty,oneof=User Company_HR"`
}

// SignUp registers a new account.
func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if !validation.Bind(c, validation.Parts{Body: &req}) {
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		fail(c, h.logger, fmt.Errorf("%w: invalid date of birth", e.ErrInvalidArguments))
		return
	}

	user, err := h.users.SignUp(c.Request.Context(), &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		RecoveryEmail: req.RecoveryEmail,
		DateOfBirth:   dob,
		MobileNumber:  req.MobileNumber,
		Role:          models.Role(req.Role),
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "user added successfully", gin.H{"user": user.Public()})
}

type signInRequest struct {
	Email        string `json:"email" binding:"omitempty,email,required_without=MobileNumber"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,numeric,required_without=Email"`
	Password     string `json:"password" binding:"required"`
}

// SignIn authenticates by email or mobile number and issues a session token.
func (h *UserHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if !validation.Bind(c, validation.Parts{Body: &req}) {
		return
	}

	token, user, err := h.users.SignIn(c.Request.Context(), req.Email, req.MobileNumber, req.Password)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "login successfully", gin.H{
		"token": token,
		"user":  user.Public(),
	})
}

type updateUserRequest struct {
	FirstName     *string `json:"firstName" binding:"omitempty,min=2,max=30"`
	LastName      *string `json:"lastName" binding:"omitempty,min=2,max=30"`
	Email         *string `json:"email" binding:"omitempty,email"`
	RecoveryEmail *string `json:"recoveryEmail" binding:"omitempty,email"`
	DateOfBirth   *string `json:"DOB" binding:"omitempty,datetime=2006-01-02"`
	MobileNumber  *string `json:"mobileNumber" binding:"omitempty,numeric,min=7,max=15"`
}

// Update changes the caller's own account; absent fields keep their value.
func (h *UserHandler) Update(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var req updateUserRequest
	if !validation.Bind(c, validation.Parts{Body: &req}) {
		return
	}

	update := models.UserUpdate{
		ID:            identity.ID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		RecoveryEmail: req.RecoveryEmail,
		MobileNumber:  req.MobileNumber,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			fail(c, h.logger, fmt.Errorf("%w: invalid date of birth", e.ErrInvalidArguments))
			return
		}
		update.DateOfBirth = &dob
	}

	user, err := h.users.Update(c.Request.Context(), &update)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "user updated successfully", gin.H{"user": user.Public()})
}

// Delete removes the caller's own account.
func (h *UserHandler) Delete(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	if err := h.users.Delete(c.Request.Context(), identity.ID); err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "user deleted successfully", nil)
}

// UserData returns the caller's own full account record.
func (h *UserHandler) UserData(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	user, err := h.users.Get(c.Request.Context(), identity.ID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "user data", gin.H{"user": user})
}

type userIDParam struct {
	UserID string `uri:"userID" binding:"required,uuid"`
}

// PublicProfile returns another user's public projection; no login needed.
func (h *UserHandler) PublicProfile(c *gin.Context) {
	var params userIDParam
	if !validation.Bind(c, validation.Parts{URI: &params}) {
		return
	}

	profile, err := h.users.PublicProfile(c.Request.Context(), uuid.MustParse(params.UserID))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "user profile", gin.H{"user": profile})
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UpdatePassword replaces the caller's password after checking the old one.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		fail(c, h.logger, e.ErrUnauthenticated)
		return
	}

	var req updatePasswordRequest
	if !validation.Bind(c, validation.Parts{Body: &req}) {
		return
	}

	if _, err := h.users.UpdatePassword(c.Request.Context(), identity.ID, req.OldPassword, req.NewPassword); err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "password updated successfully", nil)
}

type forgetPasswordRequest struct {
	Email        string `json:"email" binding:"omitempty,email,required_without=MobileNumber"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,numeric,required_without=Email"`
}

// ForgetPassword issues a one-time password and a short-lived reset token.
func (h *UserHandler) ForgetPassword(c *gin.Context) {
	var req forgetPasswordRequest
	if !validation.Bind(c, validation.Parts{Body: &req}) {
		return
	}

	otp, resetToken, err := h.users.ForgetPassword(c.Request.Context(), req.Email, req.MobileNumber)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "reset code generated", gin.H{
		"OTP":        otp,
		"resetToken": resetToken,
	})
}

type resetTokenHeader struct {
	ResetToken string `header:"resettoken" binding:"required"`
}

type resetPasswordRequest struct {
	OTP         string `json:"OTP" binding:"required,numeric,len=5"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword consumes a reset token plus its OTP and sets a new password.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var header resetTokenHeader
	var req resetPasswordRequest
	if !validation.Bind(c, validation.Parts{Header: &header, Body: &req}) {
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), header.ResetToken, req.OTP, req.NewPassword); err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "password reset successfully", nil)
}

type recoveryEmailQuery struct {
	RecoveryEmail string `form:"recoveryEmail" binding:"required,email"`
}

// AccountsByRecoveryEmail lists the public profiles of every account
// registered with the given recovery email. An empty list is a valid answer.
func (h *UserHandler) AccountsByRecoveryEmail(c *gin.Context) {
	var query recoveryEmailQuery
	if !validation.Bind(c, validation.Parts{Query: &query}) {
		return
	}

	accounts, err := h.users.AccountsByRecoveryEmail(c.Request.Context(), query.RecoveryEmail)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "linked accounts", gin.H{"users": accounts})
}
