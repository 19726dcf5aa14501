package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/justiceconnect/internal/config"
	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/events"
	"github.com/spec-kit/justiceconnect/internal/repository"
	"github.com/spec-kit/justiceconnect/pkg/util"
)

// Documents and common photo formats. Anything else is rejected before any
// bytes are written to disk.
var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"text/plain":         true,
	"application/rtf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}

// IntakeInput carries the survivor-submitted case fields.
type IntakeInput struct {
	PreferredName     string `json:"preferredName" validate:"required,max=120"`
	ContactMethod     string `json:"contactMethod" validate:"required"`
	ContactValue      string `json:"contactValue" validate:"max=240"`
	SafeToContact     *bool  `json:"safeToContact"`
	Province          string `json:"province" validate:"required,max=80"`
	City              string `json:"city" validate:"max=80"`
	Language          string `json:"language" validate:"max=80"`
	IssueCategory     string `json:"issueCategory" validate:"required,max=120"`
	DesiredOutcome    string `json:"desiredOutcome" validate:"max=2000"`
	Situation         string `json:"situation" validate:"required,max=4000"`
	Urgency           string `json:"urgency" validate:"required"`
	SafetyConcern     bool   `json:"safetyConcern"`
	ContactTimes      string `json:"contactTimes" validate:"max=240"`
	AccessNeeds       string `json:"accessNeeds" validate:"max=500"`
	ConfidentialNotes string `json:"confidentialNotes" validate:"max=2000"`
}

// UploadFile is one attachment stream handed over by the transport layer.
type UploadFile struct {
	OriginalName string
	SizeBytes    int64
	MimeType     string
	Open         func() (io.ReadCloser, error)
}

// FileStore abstracts attachment storage for the intake flow.
type FileStore interface {
	Save(originalName string, r io.Reader) (string, string, error)
	Remove(name string) error
}

// IntakeService owns the survivor-facing case lifecycle.
type IntakeService struct {
	cases       repository.CaseRepository
	attachments repository.CaseAttachmentRepository
	files       FileStore
	dispatcher  events.Dispatcher
	uploadCfg   config.UploadConfig
	logger      *zap.Logger

	now func() time.Time
}

// NewIntakeService constructs the service.
func NewIntakeService(
	cases repository.CaseRepository,
	attachments repository.CaseAttachmentRepository,
	files FileStore,
	dispatcher events.Dispatcher,
	uploadCfg config.UploadConfig,
	logger *zap.Logger,
) *IntakeService {
	return &IntakeService{
		cases:       cases,
		attachments: attachments,
		files:       files,
		dispatcher:  dispatcher,
		uploadCfg:   uploadCfg,
		logger:      logger,
		now:         time.Now,
	}
}

// SubmitCase validates the intake form, allocates the public case identifier
// and persists the case with its attachments. Validation runs fully before
// any file is stored.
func (s *IntakeService) SubmitCase(ctx context.Context, ownerID string, input IntakeInput, uploads []UploadFile) (*domain.Case, error) {
	fields := ValidateStruct(input)
	if fields == nil {
		fields = map[string]string{}
	}

	urgency := domain.Urgency(input.Urgency)
	if input.Urgency != "" && !domain.ValidUrgency(urgency) {
		fields["urgency"] = "urgency must be one of Low, Medium, High"
	}
	contactMethod := domain.ContactMethod(input.ContactMethod)
	if input.ContactMethod != "" && !domain.ValidContactMethod(contactMethod) {
		fields["contactMethod"] = "invalid contact method"
	}
	s.checkUploads(uploads, fields)
	if len(fields) > 0 {
		return nil, util.NewFieldValidationError(fields)
	}

	year := s.now().Year()
	seq, err := s.cases.NextCaseSequence(ctx, year)
	if err != nil {
		return nil, util.MapError(err)
	}

	safeToContact := true
	if input.SafeToContact != nil {
		safeToContact = *input.SafeToContact
	}

	c := &domain.Case{
		OwnerID:           ownerID,
		CaseID:            fmt.Sprintf("JC-%d-%03d", year, seq),
		PreferredName:     strings.TrimSpace(input.PreferredName),
		ContactMethod:     contactMethod,
		ContactValue:      strings.TrimSpace(input.ContactValue),
		SafeToContact:     safeToContact,
		Province:          strings.TrimSpace(input.Province),
		City:              strings.TrimSpace(input.City),
		Language:          strings.TrimSpace(input.Language),
		IssueCategory:     strings.TrimSpace(input.IssueCategory),
		DesiredOutcome:    strings.TrimSpace(input.DesiredOutcome),
		Situation:         strings.TrimSpace(input.Situation),
		Urgency:           urgency,
		SafetyConcern:     input.SafetyConcern,
		ContactTimes:      strings.TrimSpace(input.ContactTimes),
		AccessNeeds:       strings.TrimSpace(input.AccessNeeds),
		ConfidentialNotes: strings.TrimSpace(input.ConfidentialNotes),
		Priority:          urgency,
		Status:            domain.CaseStatusSubmitted,
	}
	if err := s.cases.Create(ctx, c); err != nil {
		return nil, util.MapError(err)
	}

	for _, upload := range uploads {
		attachment, err := s.storeUpload(ctx, c.ID, upload)
		if err != nil {
			s.logger.Error("attachment store failed",
				zap.String("case_id", c.CaseID),
				zap.String("file", upload.OriginalName),
				zap.Error(err))
			continue
		}
		c.Attachments = append(c.Attachments, *attachment)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCaseCreated,
		CaseID:    c.CaseID,
		ActorID:   ownerID,
		Timestamp: s.now(),
		Payload: events.CaseCreatedPayload{
			Province:      c.Province,
			IssueCategory: c.IssueCategory,
			Urgency:       c.Urgency,
			Status:        c.Status,
		},
	})

	s.logger.Info("case submitted",
		zap.String("case_id", c.CaseID),
		zap.String("urgency", string(c.Urgency)),
		zap.Int("attachments", len(c.Attachments)))
	return c, nil
}

func (s *IntakeService) checkUploads(uploads []UploadFile, fields map[string]string) {
	if len(uploads) > s.uploadCfg.MaxFiles {
		fields["attachments"] = fmt.Sprintf("at most %d files allowed", s.uploadCfg.MaxFiles)
		return
	}
	var combined int64
	for _, upload := range uploads {
		if !allowedUploadTypes[upload.MimeType] {
			fields["attachments"] = fmt.Sprintf("file type %s is not allowed", upload.MimeType)
			return
		}
		if upload.SizeBytes > s.uploadCfg.MaxFileBytes() {
			fields["attachments"] = fmt.Sprintf("each file must be at most %dMB", s.uploadCfg.MaxFileMB)
			return
		}
		combined += upload.SizeBytes
	}
	if combined > s.uploadCfg.MaxCombinedBytes() {
		fields["attachments"] = fmt.Sprintf("combined upload size must be at most %dMB", s.uploadCfg.MaxCombinedMB)
	}
}

func (s *IntakeService) storeUpload(ctx context.Context, caseRef string, upload UploadFile) (*domain.Attachment, error) {
	reader, err := upload.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	name, path, err := s.files.Save(upload.OriginalName, reader)
	if err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		CaseID:       caseRef,
		FileName:     name,
		OriginalName: upload.OriginalName,
		SizeBytes:    upload.SizeBytes,
		MimeType:     upload.MimeType,
		StoragePath:  path,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		_ = s.files.Remove(name)
		return nil, err
	}
	return attachment, nil
}

// ListMine returns the caller's cases, most recently updated first.
func (s *IntakeService) ListMine(ctx context.Context, ownerID string) ([]domain.Case, error) {
	cases, err := s.cases.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return cases, nil
}

// Latest returns the caller's most recently updated case, or NOT_FOUND if
// they have none.
func (s *IntakeService) Latest(ctx context.Context, ownerID string) (*domain.Case, error) {
	c, err := s.cases.LatestByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("case", nil)
		}
		return nil, util.MapError(err)
	}
	return s.withAttachments(ctx, c)
}

// GetCase returns a case by record ID. Owners see their own cases; admins see
// any case. Everyone else gets NOT_FOUND rather than FORBIDDEN so the
// existence of a case record is never leaked.
func (s *IntakeService) GetCase(ctx context.Context, id, callerID string, callerRole domain.Role) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("case", nil)
		}
		return nil, util.MapError(err)
	}
	if c.OwnerID != callerID && callerRole != domain.RoleAdmin {
		return nil, util.NewNotFound("case", nil)
	}
	return s.withAttachments(ctx, c)
}

// DeleteOwned removes the caller's own unassigned case, its attachments and
// stored files. Once a lawyer is assigned the record is part of an active
// engagement and deletion is refused.
func (s *IntakeService) DeleteOwned(ctx context.Context, id, ownerID string) error {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("case", nil)
		}
		return util.MapError(err)
	}
	if c.OwnerID != ownerID {
		return util.NewNotFound("case", nil)
	}
	if c.Assigned() {
		return util.NewConflict("case is assigned to a lawyer and can no longer be deleted", nil)
	}

	attachments, err := s.attachments.ListByCase(ctx, c.ID)
	if err != nil {
		return util.MapError(err)
	}
	if err := s.attachments.DeleteByCase(ctx, c.ID); err != nil {
		return util.MapError(err)
	}
	if err := s.cases.DeleteOwned(ctx, c.ID, ownerID); err != nil {
		return util.MapError(err)
	}
	// File cleanup is best-effort; orphaned files are harmless and swept
	// separately.
	for _, attachment := range attachments {
		if err := s.files.Remove(attachment.FileName); err != nil {
			s.logger.Warn("attachment file cleanup failed",
				zap.String("file", attachment.FileName), zap.Error(err))
		}
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCaseDeleted,
		CaseID:    c.CaseID,
		ActorID:   ownerID,
		Timestamp: s.now(),
	})

	s.logger.Info("case deleted", zap.String("case_id", c.CaseID))
	return nil
}

// ResolveAttachment finds a stored attachment of a case by its stored file
// name. Used by the download endpoint after token verification.
func (s *IntakeService) ResolveAttachment(ctx context.Context, caseRef, fileName string) (*domain.Attachment, error) {
	attachments, err := s.attachments.ListByCase(ctx, caseRef)
	if err != nil {
		return nil, util.MapError(err)
	}
	for i := range attachments {
		if attachments[i].FileName == fileName {
			return &attachments[i], nil
		}
	}
	return nil, util.NewNotFound("attachment", nil)
}

func (s *IntakeService) withAttachments(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	attachments, err := s.attachments.ListByCase(ctx, c.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	c.Attachments = attachments
	return c, nil
}
