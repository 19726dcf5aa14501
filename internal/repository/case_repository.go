package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// AssignmentUpdate captures the fields written together when a case is
// assigned. Applied in a single UPDATE so callers never observe a partial
// assignment.
type AssignmentUpdate struct {
	LawyerID      string
	LawyerName    string
	Priority      domain.Urgency
	Status        domain.CaseStatus
	InternalNotes string
}

// CaseRepository encapsulates case persistence.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	Update(ctx context.Context, c *domain.Case) error
	UpdateAssignment(ctx context.Context, id string, update AssignmentUpdate) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	GetByCaseID(ctx context.Context, caseID string) (*domain.Case, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Case, error)
	LatestByOwner(ctx context.Context, ownerID string) (*domain.Case, error)
	ListByStatuses(ctx context.Context, statuses []domain.CaseStatus) ([]domain.Case, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
	NextCaseSequence(ctx context.Context, year int) (int, error)
	CountHighPriorityUnassigned(ctx context.Context) (int, error)
	CountSupportedSince(ctx context.Context, since time.Time) (int, error)
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository instantiates the repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

const caseColumns = `id, owner_id, case_id, preferred_name, contact_method, contact_value,
               safe_to_contact, province, city, language, issue_category, desired_outcome,
               situation, urgency, safety_concern, contact_times, access_needs,
               confidential_notes, assigned_lawyer_id, assigned_lawyer_name, priority,
               internal_notes, status, created_at, updated_at`

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	const query = `
        INSERT INTO cases (owner_id, case_id, preferred_name, contact_method, contact_value,
                           safe_to_contact, province, city, language, issue_category,
                           desired_outcome, situation, urgency, safety_concern, contact_times,
                           access_needs, confidential_notes, priority, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.OwnerID,
		c.CaseID,
		c.PreferredName,
		c.ContactMethod,
		c.ContactValue,
		c.SafeToContact,
		c.Province,
		c.City,
		c.Language,
		c.IssueCategory,
		c.DesiredOutcome,
		c.Situation,
		c.Urgency,
		c.SafetyConcern,
		c.ContactTimes,
		c.AccessNeeds,
		c.ConfidentialNotes,
		c.Priority,
		c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *caseRepository) Update(ctx context.Context, c *domain.Case) error {
	const query = `
        UPDATE cases
        SET preferred_name=$1, contact_method=$2, contact_value=$3, safe_to_contact=$4,
            province=$5, city=$6, language=$7, issue_category=$8, desired_outcome=$9,
            situation=$10, urgency=$11, safety_concern=$12, contact_times=$13,
            access_needs=$14, confidential_notes=$15, assigned_lawyer_id=$16,
            assigned_lawyer_name=$17, priority=$18, internal_notes=$19, status=$20,
            updated_at=NOW()
        WHERE id=$21`

	cmd, err := r.pool.Exec(ctx, query,
		c.PreferredName,
		c.ContactMethod,
		c.ContactValue,
		c.SafeToContact,
		c.Province,
		c.City,
		c.Language,
		c.IssueCategory,
		c.DesiredOutcome,
		c.Situation,
		c.Urgency,
		c.SafetyConcern,
		c.ContactTimes,
		c.AccessNeeds,
		c.ConfidentialNotes,
		c.AssignedLawyerID,
		c.AssignedLawyerName,
		c.Priority,
		c.InternalNotes,
		c.Status,
		c.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) UpdateAssignment(ctx context.Context, id string, update AssignmentUpdate) error {
	const query = `
        UPDATE cases
        SET assigned_lawyer_id=$1, assigned_lawyer_name=$2, priority=$3, status=$4,
            internal_notes=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		update.LawyerID,
		update.LawyerName,
		update.Priority,
		update.Status,
		update.InternalNotes,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	const query = `SELECT ` + caseColumns + ` FROM cases WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *caseRepository) GetByCaseID(ctx context.Context, caseID string) (*domain.Case, error) {
	const query = `SELECT ` + caseColumns + ` FROM cases WHERE case_id=$1`
	return r.fetchSingle(ctx, query, caseID)
}

func (r *caseRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Case, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	c, err := scanCase(row)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *caseRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Case, error) {
	const query = `SELECT ` + caseColumns + ` FROM cases WHERE owner_id=$1 ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

func (r *caseRepository) LatestByOwner(ctx context.Context, ownerID string) (*domain.Case, error) {
	const query = `SELECT ` + caseColumns + ` FROM cases WHERE owner_id=$1 ORDER BY updated_at DESC LIMIT 1`
	return r.fetchSingle(ctx, query, ownerID)
}

func (r *caseRepository) ListByStatuses(ctx context.Context, statuses []domain.CaseStatus) ([]domain.Case, error) {
	if len(statuses) == 0 {
		return []domain.Case{}, nil
	}
	placeholders := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, status := range statuses {
		args[i] = status
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`SELECT `+caseColumns+` FROM cases WHERE status IN (%s) ORDER BY created_at DESC`,
		strings.Join(placeholders, ","))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

func (r *caseRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM cases WHERE id=$1 AND owner_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// NextCaseSequence atomically allocates the next per-year sequence number.
// The upsert-and-return runs as a single statement, so concurrent submissions
// in the same year always receive distinct, consecutive values.
func (r *caseRepository) NextCaseSequence(ctx context.Context, year int) (int, error) {
	const query = `
        INSERT INTO case_id_counters (year, seq) VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET seq = case_id_counters.seq + 1
        RETURNING seq`

	var seq int
	if err := r.pool.QueryRow(ctx, query, year).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *caseRepository) CountHighPriorityUnassigned(ctx context.Context) (int, error) {
	const query = `
        SELECT COUNT(*) FROM cases
        WHERE urgency='High' AND status IN ('Submitted','Review') AND assigned_lawyer_id IS NULL`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *caseRepository) CountSupportedSince(ctx context.Context, since time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM cases
        WHERE status IN ('Assigned','Closed') AND updated_at >= $1`
	var count int
	if err := r.pool.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanCase(row pgx.Row) (*domain.Case, error) {
	var c domain.Case
	if err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.CaseID,
		&c.PreferredName,
		&c.ContactMethod,
		&c.ContactValue,
		&c.SafeToContact,
		&c.Province,
		&c.City,
		&c.Language,
		&c.IssueCategory,
		&c.DesiredOutcome,
		&c.Situation,
		&c.Urgency,
		&c.SafetyConcern,
		&c.ContactTimes,
		&c.AccessNeeds,
		&c.ConfidentialNotes,
		&c.AssignedLawyerID,
		&c.AssignedLawyerName,
		&c.Priority,
		&c.InternalNotes,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCases(rows pgx.Rows) ([]domain.Case, error) {
	var result []domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}
