package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/domain"
	apperrors "github.com/spec-kit/justiceconnect/pkg/util"
)

// RequireRole gates a route to the given role set. It assumes the auth
// middleware ran first; a missing principal is Unauthorized, a role outside
// the set is Forbidden. Lawyers and admins must additionally be approved,
// so a pending privileged account cannot act before vetting.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if len(allowedSet) > 0 {
			if _, exists := allowedSet[principal.Role]; !exists {
				return apperrors.NewForbidden("Forbidden")
			}
		}
		if requiresApproval(principal.Role) && principal.Status != domain.ApprovalApproved {
			return apperrors.NewForbidden("account pending approval")
		}
		return c.Next()
	}
}

func requiresApproval(role domain.Role) bool {
	return role == domain.RoleLawyer || role == domain.RoleAdmin
}
