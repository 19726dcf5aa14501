package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/api/dto"
	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/service"
	apperrors "github.com/spec-kit/justiceconnect/pkg/util"
)

// LawyersHandler manages the admin roster endpoints.
type LawyersHandler struct {
	service *service.RosterService
}

// NewLawyersHandler constructs handler.
func NewLawyersHandler(rosterService *service.RosterService) *LawyersHandler {
	return &LawyersHandler{service: rosterService}
}

// List GET /api/admin/lawyers.
func (h *LawyersHandler) List(c *fiber.Ctx) error {
	query := service.RosterQuery{
		Status:   strings.TrimSpace(c.Query("status")),
		Province: strings.TrimSpace(c.Query("province")),
	}
	if accepting := c.Query("acceptingCases"); accepting != "" {
		parsed, err := strconv.ParseBool(accepting)
		if err != nil {
			return apperrors.NewValidationError("acceptingCases must be a boolean", nil)
		}
		query.AcceptingCases = &parsed
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	query.Offset = (page - 1) * pageSize
	query.Limit = pageSize

	lawyers, err := h.service.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	items := make([]dto.LawyerResponse, 0, len(lawyers))
	for i := range lawyers {
		items = append(items, lawyerResponse(&lawyers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/admin/lawyers/:id.
func (h *LawyersHandler) Get(c *fiber.Ctx) error {
	lawyer, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": lawyerResponse(lawyer)})
}

// Create POST /api/admin/lawyers.
func (h *LawyersHandler) Create(c *fiber.Ctx) error {
	var req dto.LawyerCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	lawyer, err := h.service.Create(c.UserContext(), service.LawyerCreateInput{
		FullName:        req.FullName,
		Specialization:  req.Specialization,
		Province:        req.Province,
		LicenseProvince: req.LicenseProvince,
		LicenseNumber:   req.LicenseNumber,
		YearsExperience: req.YearsExperience,
		Email:           req.Email,
		Phone:           req.Phone,
		Availability:    req.Availability,
		Status:          req.Status,
		AcceptingCases:  req.AcceptingCases,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": lawyerResponse(lawyer)})
}

// Update PATCH /api/admin/lawyers/:id.
func (h *LawyersHandler) Update(c *fiber.Ctx) error {
	var req dto.LawyerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	lawyer, err := h.service.Update(c.UserContext(), c.Params("id"), service.LawyerUpdateInput{
		FullName:        req.FullName,
		Specialization:  req.Specialization,
		Province:        req.Province,
		LicenseProvince: req.LicenseProvince,
		LicenseNumber:   req.LicenseNumber,
		YearsExperience: req.YearsExperience,
		Email:           req.Email,
		Phone:           req.Phone,
		Availability:    req.Availability,
		Status:          req.Status,
		AcceptingCases:  req.AcceptingCases,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": lawyerResponse(lawyer)})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func lawyerResponse(lawyer *domain.Lawyer) dto.LawyerResponse {
	return dto.LawyerResponse{
		ID:              lawyer.ID,
		FullName:        lawyer.FullName,
		Specialization:  lawyer.Specialization,
		Province:        lawyer.Province,
		LicenseProvince: lawyer.LicenseProvince,
		LicenseNumber:   lawyer.LicenseNumber,
		YearsExperience: lawyer.YearsExperience,
		Email:           lawyer.Email,
		Phone:           lawyer.Phone,
		Availability:    lawyer.Availability,
		Status:          lawyer.Status,
		AcceptingCases:  lawyer.AcceptingCases,
		CreatedAt:       lawyer.CreatedAt,
		UpdatedAt:       lawyer.UpdatedAt,
	}
}
