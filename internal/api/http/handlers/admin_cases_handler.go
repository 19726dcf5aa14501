package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/api/dto"
	"github.com/spec-kit/justiceconnect/internal/auth"
	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/service"
	apperrors "github.com/spec-kit/justiceconnect/pkg/util"
)

// AdminCasesHandler manages the admin triage endpoints.
type AdminCasesHandler struct {
	service *service.AssignmentService
}

// NewAdminCasesHandler constructs handler.
func NewAdminCasesHandler(assignmentService *service.AssignmentService) *AdminCasesHandler {
	return &AdminCasesHandler{service: assignmentService}
}

// Queue GET /api/admin/cases/queue.
func (h *AdminCasesHandler) Queue(c *fiber.Ctx) error {
	rows, err := h.service.ListQueue(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rows})
}

// Detail GET /api/admin/cases/:caseId.
func (h *AdminCasesHandler) Detail(c *fiber.Ctx) error {
	detail, err := h.service.GetCaseDetail(c.UserContext(), c.Params("caseId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adminCaseDetail(detail)})
}

// Assign POST /api/admin/cases/:caseId/assign.
func (h *AdminCasesHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	assigned, err := h.service.AssignCase(c.UserContext(), c.Params("caseId"), principal.IdentityID, service.AssignInput{
		LawyerID:      req.LawyerID,
		Priority:      req.Priority,
		Status:        req.Status,
		InternalNotes: req.InternalNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseDetail(assigned)})
}

// UpdateStatus PATCH /api/admin/cases/:caseId/status.
func (h *AdminCasesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), c.Params("caseId"), principal.IdentityID, domain.CaseStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseDetail(updated)})
}

func adminCaseDetail(detail *service.CaseDetail) dto.AdminCaseDetailResponse {
	history := make([]dto.CaseHistoryResponse, 0, len(detail.History))
	for _, entry := range detail.History {
		history = append(history, dto.CaseHistoryResponse{
			ID:         entry.ID,
			ChangeType: entry.ChangeType,
			OldValue:   entry.OldValue,
			NewValue:   entry.NewValue,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return dto.AdminCaseDetailResponse{
		CaseDetailResponse: caseDetail(detail.Case),
		InternalNotes:      detail.Case.InternalNotes,
		History:            history,
	}
}
