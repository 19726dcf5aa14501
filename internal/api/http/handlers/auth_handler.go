package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/api/dto"
	"github.com/spec-kit/justiceconnect/internal/config"
	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/service"
	apperrors "github.com/spec-kit/justiceconnect/pkg/util"
)

// AuthHandler manages registration, login and password reset endpoints.
type AuthHandler struct {
	service    *service.AuthService
	sessionCfg config.SessionConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: authService, sessionCfg: sessionCfg}
}

// Register POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	identity, err := h.service.Register(c.UserContext(), service.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
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
		Expertise:     req.Expertise,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": identityResponse(identity)})
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	session, identity, err := h.service.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.sessionCfg.CookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.sessionCfg.Secure,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.JSON(fiber.Map{"data": identityResponse(identity)})
}

// Logout POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.sessionCfg.CookieName)
	if err := h.service.Logout(c.UserContext(), token); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.sessionCfg.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.sessionCfg.Secure,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"loggedOut": true}})
}

// RequestPasswordReset POST /api/auth/password/reset/request. The response
// does not reveal whether the email exists; the token travels out-of-band.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.service.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{"message": "if the account exists, reset instructions have been sent"},
	})
}

// ConfirmPasswordReset POST /api/auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.ResetPassword(c.UserContext(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

func identityResponse(identity *domain.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:            identity.ID,
		Email:         identity.Email,
		Role:          identity.Role,
		Status:        identity.Status,
		PreferredName: identity.PreferredName,
		LegalName:     identity.LegalName,
		ContactMethod: identity.ContactMethod,
		Phone:         identity.Phone,
		SafeToContact: identity.SafeToContact,
		Province:      identity.Province,
		City:          identity.City,
		Language:      identity.Language,
		ContactTimes:  identity.ContactTimes,
		AccessNeeds:   identity.AccessNeeds,
		Notes:         identity.Notes,
		CreatedAt:     identity.CreatedAt,
	}
}
