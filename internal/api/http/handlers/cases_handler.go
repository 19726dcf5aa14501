package handlers

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/api/dto"
	"github.com/spec-kit/justiceconnect/internal/auth"
	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/service"
	apperrors "github.com/spec-kit/justiceconnect/pkg/util"
)

// CasesHandler manages the survivor-facing case endpoints.
type CasesHandler struct {
	service *service.IntakeService
	tokens  *auth.DownloadTokenManager
}

// NewCasesHandler constructs handler.
func NewCasesHandler(intakeService *service.IntakeService, tokens *auth.DownloadTokenManager) *CasesHandler {
	return &CasesHandler{service: intakeService, tokens: tokens}
}

// Submit POST /api/cases/request. Multipart form with attachment files under
// the "attachments" field.
func (h *CasesHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.SubmitCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var uploads []service.UploadFile
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["attachments"] {
			uploads = append(uploads, uploadFromHeader(header))
		}
	}

	created, err := h.service.SubmitCase(c.UserContext(), principal.IdentityID, service.IntakeInput{
		PreferredName:     req.PreferredName,
		ContactMethod:     req.ContactMethod,
		ContactValue:      req.ContactValue,
		SafeToContact:     req.SafeToContact,
		Province:          req.Province,
		City:              req.City,
		Language:          req.Language,
		IssueCategory:     req.IssueCategory,
		DesiredOutcome:    req.DesiredOutcome,
		Situation:         req.Situation,
		Urgency:           req.Urgency,
		SafetyConcern:     req.SafetyConcern,
		ContactTimes:      req.ContactTimes,
		AccessNeeds:       req.AccessNeeds,
		ConfidentialNotes: req.ConfidentialNotes,
	}, uploads)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": caseDetail(created)})
}

func uploadFromHeader(header *multipart.FileHeader) service.UploadFile {
	return service.UploadFile{
		OriginalName: header.Filename,
		SizeBytes:    header.Size,
		MimeType:     header.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

// ListMine GET /api/cases/mine.
func (h *CasesHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	cases, err := h.service.ListMine(c.UserContext(), principal.IdentityID)
	if err != nil {
		return err
	}
	items := make([]dto.CaseSummary, 0, len(cases))
	for i := range cases {
		items = append(items, caseSummary(&cases[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Latest GET /api/cases/latest.
func (h *CasesHandler) Latest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	latest, err := h.service.Latest(c.UserContext(), principal.IdentityID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseDetail(latest)})
}

// Get GET /api/cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	found, err := h.service.GetCase(c.UserContext(), c.Params("id"), principal.IdentityID, principal.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseDetail(found)})
}

// Delete DELETE /api/cases/:id.
func (h *CasesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	if err := h.service.DeleteOwned(c.UserContext(), c.Params("id"), principal.IdentityID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// AttachmentLink GET /api/cases/:id/attachments/:file/link. Returns a
// short-lived signed URL; the file itself is served by the download endpoint.
func (h *CasesHandler) AttachmentLink(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	found, err := h.service.GetCase(c.UserContext(), c.Params("id"), principal.IdentityID, principal.Role)
	if err != nil {
		return err
	}

	fileName := c.Params("file")
	var match *domain.Attachment
	for i := range found.Attachments {
		if found.Attachments[i].FileName == fileName {
			match = &found.Attachments[i]
			break
		}
	}
	if match == nil {
		return apperrors.NewNotFound("attachment", nil)
	}

	token, err := h.tokens.Generate(found.ID, match.FileName)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"url": "/api/files/" + token}})
}

func caseSummary(c *domain.Case) dto.CaseSummary {
	return dto.CaseSummary{
		ID:            c.ID,
		CaseID:        c.CaseID,
		IssueCategory: c.IssueCategory,
		Province:      c.Province,
		Urgency:       c.Urgency,
		Status:        c.Status,
		LawyerName:    c.AssignedLawyerName,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func caseDetail(c *domain.Case) dto.CaseDetailResponse {
	attachments := make([]dto.AttachmentResponse, 0, len(c.Attachments))
	for _, attachment := range c.Attachments {
		attachments = append(attachments, dto.AttachmentResponse{
			ID:           attachment.ID,
			FileName:     attachment.FileName,
			OriginalName: attachment.OriginalName,
			SizeBytes:    attachment.SizeBytes,
			MimeType:     attachment.MimeType,
			CreatedAt:    attachment.CreatedAt,
		})
	}
	return dto.CaseDetailResponse{
		ID:                c.ID,
		CaseID:            c.CaseID,
		PreferredName:     c.PreferredName,
		ContactMethod:     c.ContactMethod,
		ContactValue:      c.ContactValue,
		SafeToContact:     c.SafeToContact,
		Province:          c.Province,
		City:              c.City,
		Language:          c.Language,
		IssueCategory:     c.IssueCategory,
		DesiredOutcome:    c.DesiredOutcome,
		Situation:         c.Situation,
		Urgency:           c.Urgency,
		SafetyConcern:     c.SafetyConcern,
		ContactTimes:      c.ContactTimes,
		AccessNeeds:       c.AccessNeeds,
		ConfidentialNotes: c.ConfidentialNotes,
		Attachments:       attachments,
		LawyerName:        c.AssignedLawyerName,
		Priority:          c.Priority,
		Status:            c.Status,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
