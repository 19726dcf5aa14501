package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/auth"
	"github.com/spec-kit/justiceconnect/internal/service"
	apperrors "github.com/spec-kit/justiceconnect/pkg/util"
)

// FilesHandler serves attachment downloads. The signed token in the URL is
// the credential; no session is required so links can be opened from email.
type FilesHandler struct {
	intake *service.IntakeService
	tokens *auth.DownloadTokenManager
}

// NewFilesHandler constructs handler.
func NewFilesHandler(intakeService *service.IntakeService, tokens *auth.DownloadTokenManager) *FilesHandler {
	return &FilesHandler{intake: intakeService, tokens: tokens}
}

// Download GET /api/files/:token.
func (h *FilesHandler) Download(c *fiber.Ctx) error {
	claims, err := h.tokens.Parse(c.Params("token"))
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired download link")
	}

	attachment, err := h.intake.ResolveAttachment(c.UserContext(), claims.CaseID, claims.FileName)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, attachment.MimeType)
	return c.Download(attachment.StoragePath, attachment.OriginalName)
}
