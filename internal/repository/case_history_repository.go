package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// CaseHistoryRepository persists case audit entries.
type CaseHistoryRepository interface {
	Create(ctx context.Context, entry *domain.CaseHistory) error
	ListByCase(ctx context.Context, caseID string) ([]domain.CaseHistory, error)
}

type caseHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewCaseHistoryRepository constructs the repository.
func NewCaseHistoryRepository(pool *pgxpool.Pool) CaseHistoryRepository {
	return &caseHistoryRepository{pool: pool}
}

func (r *caseHistoryRepository) Create(ctx context.Context, entry *domain.CaseHistory) error {
	const query = `
        INSERT INTO case_history (case_ref, changed_by_id, change_type, old_value, new_value)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.CaseID,
		entry.ChangedByID,
		entry.ChangeType,
		entry.OldValue,
		entry.NewValue,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *caseHistoryRepository) ListByCase(ctx context.Context, caseID string) ([]domain.CaseHistory, error) {
	const query = `
        SELECT id, case_ref, changed_by_id, change_type, old_value, new_value, created_at
        FROM case_history WHERE case_ref=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CaseHistory
	for rows.Next() {
		var entry domain.CaseHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.CaseID,
			&entry.ChangedByID,
			&entry.ChangeType,
			&entry.OldValue,
			&entry.NewValue,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
