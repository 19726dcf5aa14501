package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/events"
	"github.com/spec-kit/justiceconnect/internal/repository"
	"github.com/spec-kit/justiceconnect/pkg/util"
)

// AssignInput carries the admin assignment form.
type AssignInput struct {
	LawyerID      string `json:"lawyerId" validate:"required"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	InternalNotes string `json:"internalNotes" validate:"max=2000"`
}

// QueueRow is the triage queue projection shown to admins. Survivors who
// flagged a safety concern are listed anonymously.
type QueueRow struct {
	ID           string            `json:"id"`
	CaseID       string            `json:"caseId"`
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle"`
	Urgency      domain.Urgency    `json:"urgency"`
	UrgencyBadge string            `json:"urgencyBadge"`
	Status       domain.CaseStatus `json:"status"`
	LawyerName   string            `json:"lawyerName,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// CaseDetail bundles a case with its audit history for the admin view.
type CaseDetail struct {
	Case    *domain.Case
	History []domain.CaseHistory
}

// AssignmentService owns the admin triage flow: queue, assignment and status
// transitions.
type AssignmentService struct {
	cases       repository.CaseRepository
	attachments repository.CaseAttachmentRepository
	lawyers     repository.LawyerRepository
	history     repository.CaseHistoryRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger

	now func() time.Time
}

// NewAssignmentService constructs the service.
func NewAssignmentService(
	cases repository.CaseRepository,
	attachments repository.CaseAttachmentRepository,
	lawyers repository.LawyerRepository,
	history repository.CaseHistoryRepository,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		cases:       cases,
		attachments: attachments,
		lawyers:     lawyers,
		history:     history,
		dispatcher:  dispatcher,
		logger:      logger,
		now:         time.Now,
	}
}

// ListQueue returns open and in-progress cases, newest first. Closed cases
// drop off the queue.
func (s *AssignmentService) ListQueue(ctx context.Context) ([]QueueRow, error) {
	cases, err := s.cases.ListByStatuses(ctx, []domain.CaseStatus{
		domain.CaseStatusSubmitted,
		domain.CaseStatusReview,
		domain.CaseStatusAssigned,
	})
	if err != nil {
		return nil, util.MapError(err)
	}

	rows := make([]QueueRow, 0, len(cases))
	for _, c := range cases {
		title := c.PreferredName
		if title == "" {
			title = "Survivor"
		}
		if c.SafetyConcern {
			title = "Anonymous Survivor"
		}
		rows = append(rows, QueueRow{
			ID:           c.ID,
			CaseID:       c.CaseID,
			Title:        title,
			Subtitle:     fmt.Sprintf("%s • %s", c.Province, c.IssueCategory),
			Urgency:      c.Urgency,
			UrgencyBadge: urgencyBadge(c.Urgency),
			Status:       c.Status,
			LawyerName:   c.AssignedLawyerName,
			CreatedAt:    c.CreatedAt,
		})
	}
	return rows, nil
}

func urgencyBadge(u domain.Urgency) string {
	switch u {
	case domain.UrgencyHigh:
		return "bg-danger"
	case domain.UrgencyMedium:
		return "bg-warning text-dark"
	default:
		return "bg-secondary"
	}
}

// AssignCase links a lawyer to a case, addressed by its public JC identifier.
// The lawyer is resolved first so a bad lawyer reference is reported even
// when the case reference is also bad. Reassignment overwrites the previous
// lawyer; all assignment fields are written in one update so readers never
// observe a partial assignment.
func (s *AssignmentService) AssignCase(ctx context.Context, caseID, actorID string, input AssignInput) (*domain.Case, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, util.NewFieldValidationError(fields)
	}

	lawyer, err := s.lawyers.GetByID(ctx, input.LawyerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("lawyer", nil)
		}
		return nil, util.MapError(err)
	}
	if lawyer.Status != domain.LawyerStatusActive {
		return nil, util.NewConflict("lawyer is not active and cannot receive cases",
			map[string]any{"status": string(lawyer.Status)})
	}

	c, err := s.cases.GetByCaseID(ctx, caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("case", nil)
		}
		return nil, util.MapError(err)
	}

	priority := domain.Urgency(input.Priority)
	if input.Priority == "" {
		priority = domain.UrgencyMedium
	} else if !domain.ValidUrgency(priority) {
		return nil, util.NewFieldValidationError(map[string]string{"priority": "priority must be one of Low, Medium, High"})
	}
	status := domain.CaseStatus(input.Status)
	if input.Status == "" {
		status = domain.CaseStatusAssigned
	} else if !domain.ValidCaseStatus(status) {
		return nil, util.NewFieldValidationError(map[string]string{"status": "invalid case status"})
	}

	update := repository.AssignmentUpdate{
		LawyerID:      lawyer.ID,
		LawyerName:    lawyer.FullName,
		Priority:      priority,
		Status:        status,
		InternalNotes: input.InternalNotes,
	}
	if err := s.cases.UpdateAssignment(ctx, c.ID, update); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("case", nil)
		}
		return nil, util.MapError(err)
	}

	s.recordHistory(ctx, c.ID, actorID, domain.ChangeTypeAssignment,
		map[string]any{"lawyerId": c.AssignedLawyerID, "lawyerName": c.AssignedLawyerName, "status": string(c.Status)},
		map[string]any{"lawyerId": lawyer.ID, "lawyerName": lawyer.FullName, "status": string(status)})

	c.AssignedLawyerID = &lawyer.ID
	c.AssignedLawyerName = lawyer.FullName
	c.Priority = priority
	c.Status = status
	c.InternalNotes = input.InternalNotes

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCaseAssigned,
		CaseID:    c.CaseID,
		ActorID:   actorID,
		Timestamp: s.now(),
		Payload: events.CaseAssignedPayload{
			LawyerID:   lawyer.ID,
			LawyerName: lawyer.FullName,
			Priority:   priority,
			Status:     status,
		},
	})

	s.logger.Info("case assigned",
		zap.String("case_id", c.CaseID),
		zap.String("lawyer_id", lawyer.ID),
		zap.String("status", string(status)))
	return c, nil
}

// UpdateStatus moves a case, addressed by its public JC identifier, along
// its one-directional lifecycle.
func (s *AssignmentService) UpdateStatus(ctx context.Context, caseID, actorID string, next domain.CaseStatus) (*domain.Case, error) {
	if !domain.ValidCaseStatus(next) {
		return nil, util.NewFieldValidationError(map[string]string{"status": "invalid case status"})
	}

	c, err := s.cases.GetByCaseID(ctx, caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("case", nil)
		}
		return nil, util.MapError(err)
	}
	if c.Status == next {
		return c, nil
	}
	if !domain.ValidTransition(c.Status, next) {
		return nil, util.NewConflict(
			fmt.Sprintf("cannot move case from %s to %s", c.Status, next),
			map[string]any{"from": string(c.Status), "to": string(next)})
	}

	old := c.Status
	c.Status = next
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, util.MapError(err)
	}

	s.recordHistory(ctx, c.ID, actorID, domain.ChangeTypeStatus,
		map[string]any{"status": string(old)},
		map[string]any{"status": string(next)})

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCaseStatusChanged,
		CaseID:    c.CaseID,
		ActorID:   actorID,
		Timestamp: s.now(),
		Payload: events.CaseStatusChangedPayload{
			OldStatus: old,
			NewStatus: next,
		},
	})

	s.logger.Info("case status changed",
		zap.String("case_id", c.CaseID),
		zap.String("from", string(old)),
		zap.String("to", string(next)))
	return c, nil
}

// GetCaseDetail returns the full case by public JC identifier, attachments
// included, with its audit trail.
func (s *AssignmentService) GetCaseDetail(ctx context.Context, caseID string) (*CaseDetail, error) {
	c, err := s.cases.GetByCaseID(ctx, caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("case", nil)
		}
		return nil, util.MapError(err)
	}
	attachments, err := s.attachments.ListByCase(ctx, c.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	c.Attachments = attachments

	history, err := s.history.ListByCase(ctx, c.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return &CaseDetail{Case: c, History: history}, nil
}

// Audit writes never fail the main operation.
func (s *AssignmentService) recordHistory(ctx context.Context, caseRef, actorID string, changeType domain.CaseChangeType, oldValue, newValue map[string]any) {
	entry := &domain.CaseHistory{
		CaseID:      caseRef,
		ChangedByID: &actorID,
		ChangeType:  changeType,
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Warn("case history write failed",
			zap.String("case_ref", caseRef), zap.Error(err))
	}
}
