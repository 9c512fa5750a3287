package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"wastemap_backend/internal/feature/auth/domain/entity"
	"wastemap_backend/internal/platform/apperr"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID holds the resolved user's ID as a string.
	ContextUserID = "userID"
	// ContextIdentity holds the Identity attached by RequireAuth or OptionalAuth.
	ContextIdentity = "identity"
)

// AuthState says whether a request carries a resolved identity.
type AuthState int

const (
	// Anonymous is the zero value: no token, or a token that did not resolve to a user.
	Anonymous AuthState = iota
	// Authenticated means the token verified and the user was loaded from storage.
	Authenticated
)

func (s AuthState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Identity is the request-scoped caller. User is non-nil only when State is Authenticated.
type Identity struct {
	State AuthState
	User  *entity.User
}

// IsAuthenticated reports whether a user was resolved.
func (i Identity) IsAuthenticated() bool {
	return i.State == Authenticated && i.User != nil
}

// IdentityFrom returns the Identity attached to c, or an Anonymous identity when there is none.
func IdentityFrom(c *gin.Context) Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return Identity{State: Anonymous}
	}
	id, ok := v.(Identity)
	if !ok {
		return Identity{State: Anonymous}
	}
	return id
}

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// UserLoader loads the current record of a user.
// A missing user must be reported with an error of kind apperr.NotFound.
type UserLoader interface {
	CurrentUser(ctx context.Context, id string) (*entity.User, error)
}

// Authenticator builds the access-control middlewares.
// Users are always reloaded from storage, so a role change takes effect on the next request.
type Authenticator struct {
	tokens TokenVerifier
	users  UserLoader
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens TokenVerifier, users UserLoader) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

func attach(c *gin.Context, user *entity.User) {
	c.Set(ContextIdentity, Identity{State: Authenticated, User: user})
	c.Set(ContextUserID, user.ID)
}

// RequireAuth rejects requests without a usable identity.
// No bearer token gives 401; an invalid token or a vanished user gives 403.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.ErrorResponse{Error: "access token required"})
			return
		}

		claims, err := a.tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, apperr.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		user, err := a.users.CurrentUser(c.Request.Context(), claims.UserID())
		if err != nil {
			if apperr.IsKind(err, apperr.NotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, apperr.ErrorResponse{Error: "user not found"})
				return
			}
			apperr.Respond(c, err)
			return
		}

		attach(c, user)
		c.Next()
	}
}

// OptionalAuth resolves an identity when it can and never rejects the request.
// Downstream handlers read the outcome with IdentityFrom.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIdentity, Identity{State: Anonymous})

		tokenStr, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := a.tokens.Verify(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		user, err := a.users.CurrentUser(c.Request.Context(), claims.UserID())
		if err != nil {
			if !apperr.IsKind(err, apperr.NotFound) {
				slog.Warn("optional auth: user lookup failed", "error", err, "user_id", claims.UserID())
			}
			c.Next()
			return
		}

		attach(c, user)
		c.Next()
	}
}

// RequireRole must run after RequireAuth. Anonymous callers get 401, other roles get 403.
func (a *Authenticator) RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if !id.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.ErrorResponse{Error: "authentication required"})
			return
		}
		if id.User.Role != role {
			msg := "insufficient role"
			if role == entity.RoleAdmin {
				msg = "admin access required"
			}
			c.AbortWithStatusJSON(http.StatusForbidden, apperr.ErrorResponse{Error: msg})
			return
		}
		c.Next()
	}
}
