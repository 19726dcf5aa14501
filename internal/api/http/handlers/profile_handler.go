package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/api/dto"
	"github.com/spec-kit/justiceconnect/internal/auth"
	"github.com/spec-kit/justiceconnect/internal/service"
	apperrors "github.com/spec-kit/justiceconnect/pkg/util"
)

// ProfileHandler manages the authenticated account's own profile.
type ProfileHandler struct {
	service *service.AuthService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{service: authService}
}

// Me GET /api/profile/me, also mounted at GET /api/auth/me.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	identity, err := h.service.GetProfile(c.UserContext(), principal.IdentityID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": identityResponse(identity)})
}

// UpdateMe PUT /api/profile/me.
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, err := h.service.UpdateProfile(c.UserContext(), principal.IdentityID, service.ProfileUpdateInput{
		PreferredName: req.PreferredName,
		LegalName:     req.LegalName,
		ContactMethod: req.ContactMethod,
		Phone:         req.Phone,
		SafeToContact: req.SafeToContact,
		Province:      req.Province,
		City:          req.City,
		Language:      req.Language,
		ContactTimes:  req.ContactTimes,
		AccessNeeds:   req.AccessNeeds,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": identityResponse(identity)})
}
