package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// CaseAttachmentRepository persists attachment metadata for cases.
type CaseAttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	ListByCase(ctx context.Context, caseID string) ([]domain.Attachment, error)
	DeleteByCase(ctx context.Context, caseID string) error
}

type caseAttachmentRepository struct {
	pool *pgxpool.Pool
}

// NewCaseAttachmentRepository constructs the repository.
func NewCaseAttachmentRepository(pool *pgxpool.Pool) CaseAttachmentRepository {
	return &caseAttachmentRepository{pool: pool}
}

func (r *caseAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO case_attachments (case_ref, file_name, original_name, size_bytes, mime_type, storage_path)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		attachment.CaseID,
		attachment.FileName,
		attachment.OriginalName,
		attachment.SizeBytes,
		attachment.MimeType,
		attachment.StoragePath,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *caseAttachmentRepository) ListByCase(ctx context.Context, caseID string) ([]domain.Attachment, error) {
	const query = `
        SELECT id, case_ref, file_name, original_name, size_bytes, mime_type, storage_path, created_at
        FROM case_attachments WHERE case_ref=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var attachment domain.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.CaseID,
			&attachment.FileName,
			&attachment.OriginalName,
			&attachment.SizeBytes,
			&attachment.MimeType,
			&attachment.StoragePath,
			&attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}

func (r *caseAttachmentRepository) DeleteByCase(ctx context.Context, caseID string) error {
	const query = `DELETE FROM case_attachments WHERE case_ref=$1`
	_, err := r.pool.Exec(ctx, query, caseID)
	return err
}
