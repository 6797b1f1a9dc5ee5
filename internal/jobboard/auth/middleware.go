package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	e "github.com/gartstein/jobboard/internal/jobboard/errors"
	"github.com/gartstein/jobboard/internal/jobboard/models"
)

// HeaderToken is the request header carrying prefix+token.
const HeaderToken = "accesstoken"

const identityKey = "authUser"

// Identity is the authenticated caller's minimal profile attached to the
// request after credential verification.
type Identity struct {
	ID       uuid.UUID
	Username string
	Email    string
	Role     models.Role
}

// UserLookup resolves the acting identity by id.
type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Verifier builds role-gated gin middleware from the configured token
// settings and a user lookup.
type Verifier struct {
	users  UserLookup
	secret string
	prefix string
}

func NewVerifier(users UserLookup, secret, prefix string) *Verifier {
	return &Verifier{users: users, secret: secret, prefix: prefix}
}

// Require authenticates the request and checks role membership. The chain:
// missing header or prefix or empty payload id fail with 400, a token that
// does not verify fails with 401 (the original surfaced 500 here; corrected),
// an unknown identity fails with 404, and a disallowed role fails with 401.
// No side effects beyond the user lookup; safe to retry.
func (v *Verifier) Require(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		header := c.GetHeader(HeaderToken)
		if header == "" {
			abort(c, http.StatusBadRequest, "please login first")
			return
		}
		tokenString, ok := strings.CutPrefix(header, v.prefix)
		if !ok {
			abort(c, http.StatusBadRequest, "invalid token prefix")
			return
		}

		claims, err := VerifySessionToken(tokenString, v.secret)
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if claims.UserID == uuid.Nil {
			abort(c, http.StatusBadRequest, "invalid token payload")
			return
		}

		user, err := v.users.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if e.StatusOf(err) == http.StatusNotFound {
				abort(c, http.StatusNotFound, "please sign up first")
				return
			}
			abort(c, http.StatusInternalServerError, "failed to load identity")
			return
		}

		if !allowed[user.Role] {
			abort(c, http.StatusUnauthorized, "you are not allowed to access this route")
			return
		}

		c.Set(identityKey, &Identity{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})
		c.Next()
	}
}

// IdentityFrom returns the identity attached by Require.
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
