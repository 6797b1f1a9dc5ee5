// Package auth issues and verifies the two token kinds used by the API
// (session tokens and password-reset tokens) and provides the gin middleware
// that authenticates requests and gates them by role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gartstein/jobboard/internal/jobboard/models"
)

const (
	// sessionTTL matches the original contract: sign-in tokens live 3 days.
	sessionTTL = 72 * time.Hour
	// resetTTL bounds the password-reset window.
	resetTTL = 15 * time.Minute
)

// SessionClaims is the payload of a sign-in token.
type SessionClaims struct {
	UserID       uuid.UUID `json:"id"`
	Email        string    `json:"userEmail"`
	MobileNumber string    `json:"mobileNumber"`
	jwt.RegisteredClaims
}

// ResetClaims is the payload of a password-reset token. The OTP is embedded
// so the reset step can check token and code together without server state.
type ResetClaims struct {
	UserID       uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	OTP          string    `json:"otp"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a 3-day session token for the user.
func IssueSessionToken(user *models.User, secret string) (string, error) {
	claims := SessionClaims{
		UserID:       user.ID,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySessionToken checks signature and expiry and returns the claims.
func VerifySessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := parseInto(tokenString, secret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IssueResetToken signs a 15-minute reset token carrying the OTP.
func IssueResetToken(user *models.User, otp, secret string) (string, error) {
	claims := ResetClaims{
		UserID:       user.ID,
		Email:        user.Email,
		MobileNumber: user.MobileNumber,
		OTP:          otp,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(resetTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyResetToken checks signature and expiry and returns the claims.
func VerifyResetToken(tokenString, secret string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := parseInto(tokenString, secret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ErrTokenExpired reports a structurally valid but expired token.
var ErrTokenExpired = errors.New("token expired")

func parseInto(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token claims")
	}
	return nil
}
