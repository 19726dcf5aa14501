package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/domain"
	apperrors "github.com/spec-kit/justiceconnect/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the identity snapshot bound to a request after the session
// gate passes. It reflects the identity at login time; role or approval
// changes require a fresh login.
type Principal struct {
	IdentityID string
	Role       domain.Role
	Email      string
	Status     domain.ApprovalStatus
}

// AuthMiddleware resolves session cookies into principals.
type AuthMiddleware struct {
	store      SessionStore
	cookieName string
}

// NewAuthMiddleware constructs middleware around a session store.
func NewAuthMiddleware(store SessionStore, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{store: store, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := c.Cookies(m.cookieName)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	session, err := m.store.Get(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return apperrors.NewUnauthorized("not authenticated")
		}
		return apperrors.MapError(err)
	}
	if session.Expired(time.Now()) {
		_ = m.store.Delete(c.UserContext(), token)
		return apperrors.NewUnauthorized("session expired")
	}

	c.Locals(principalKey, &Principal{
		IdentityID: session.IdentityID,
		Role:       session.Role,
		Email:      session.Email,
		Status:     session.Status,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
