package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// LawyerFilter defines query params for roster listing.
type LawyerFilter struct {
	Status         *domain.LawyerStatus
	AcceptingCases *bool
	Province       *string
	Limit          int
	Offset         int
}

// LawyerRepository handles persistence for roster entries.
type LawyerRepository interface {
	Create(ctx context.Context, lawyer *domain.Lawyer) error
	Update(ctx context.Context, lawyer *domain.Lawyer) error
	GetByID(ctx context.Context, id string) (*domain.Lawyer, error)
	List(ctx context.Context, filter LawyerFilter) ([]domain.Lawyer, error)
	CountAvailable(ctx context.Context) (int, error)
}

type lawyerRepository struct {
	pool *pgxpool.Pool
}

// NewLawyerRepository instantiates the repository.
func NewLawyerRepository(pool *pgxpool.Pool) LawyerRepository {
	return &lawyerRepository{pool: pool}
}

const lawyerColumns = `id, full_name, specialization, province, license_province, license_number,
               years_experience, email, phone, availability, status, accepting_cases,
               identity_id, created_at, updated_at`

func (r *lawyerRepository) Create(ctx context.Context, lawyer *domain.Lawyer) error {
	const query = `
        INSERT INTO lawyers (full_name, specialization, province, license_province, license_number,
                             years_experience, email, phone, availability, status, accepting_cases, identity_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		lawyer.FullName,
		lawyer.Specialization,
		lawyer.Province,
		lawyer.LicenseProvince,
		lawyer.LicenseNumber,
		lawyer.YearsExperience,
		lawyer.Email,
		lawyer.Phone,
		lawyer.Availability,
		lawyer.Status,
		lawyer.AcceptingCases,
		lawyer.IdentityID,
	).Scan(&lawyer.ID, &lawyer.CreatedAt, &lawyer.UpdatedAt)
}

func (r *lawyerRepository) Update(ctx context.Context, lawyer *domain.Lawyer) error {
	const query = `
        UPDATE lawyers
        SET full_name=$1, specialization=$2, province=$3, license_province=$4, license_number=$5,
            years_experience=$6, email=$7, phone=$8, availability=$9, status=$10,
            accepting_cases=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		lawyer.FullName,
		lawyer.Specialization,
		lawyer.Province,
		lawyer.LicenseProvince,
		lawyer.LicenseNumber,
		lawyer.YearsExperience,
		lawyer.Email,
		lawyer.Phone,
		lawyer.Availability,
		lawyer.Status,
		lawyer.AcceptingCases,
		lawyer.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *lawyerRepository) GetByID(ctx context.Context, id string) (*domain.Lawyer, error) {
	const query = `SELECT ` + lawyerColumns + ` FROM lawyers WHERE id=$1`

	var lawyer domain.Lawyer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&lawyer.ID,
		&lawyer.FullName,
		&lawyer.Specialization,
		&lawyer.Province,
		&lawyer.LicenseProvince,
		&lawyer.LicenseNumber,
		&lawyer.YearsExperience,
		&lawyer.Email,
		&lawyer.Phone,
		&lawyer.Availability,
		&lawyer.Status,
		&lawyer.AcceptingCases,
		&lawyer.IdentityID,
		&lawyer.CreatedAt,
		&lawyer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lawyer, nil
}

func (r *lawyerRepository) List(ctx context.Context, filter LawyerFilter) ([]domain.Lawyer, error) {
	query := `SELECT ` + lawyerColumns + ` FROM lawyers`
	args := []any{}
	clauses := []string{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.AcceptingCases != nil {
		args = append(args, *filter.AcceptingCases)
		clauses = append(clauses, fmt.Sprintf("accepting_cases=$%d", len(args)))
	}
	if filter.Province != nil {
		args = append(args, *filter.Province)
		clauses = append(clauses, fmt.Sprintf("province=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY full_name ASC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lawyer
	for rows.Next() {
		var lawyer domain.Lawyer
		if err := rows.Scan(
			&lawyer.ID,
			&lawyer.FullName,
			&lawyer.Specialization,
			&lawyer.Province,
			&lawyer.LicenseProvince,
			&lawyer.LicenseNumber,
			&lawyer.YearsExperience,
			&lawyer.Email,
			&lawyer.Phone,
			&lawyer.Availability,
			&lawyer.Status,
			&lawyer.AcceptingCases,
			&lawyer.IdentityID,
			&lawyer.CreatedAt,
			&lawyer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lawyer)
	}
	return result, rows.Err()
}

func (r *lawyerRepository) CountAvailable(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM lawyers WHERE status='Active' AND accepting_cases=TRUE`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
