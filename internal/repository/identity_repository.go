package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

// IdentityRepository defines persistence access for accounts.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	Update(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
}

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository returns a Postgres-backed implementation.
func NewIdentityRepository(pool *pgxpool.Pool) IdentityRepository {
	return &identityRepository{pool: pool}
}

const identityColumns = `id, email, password_hash, role, status, preferred_name, legal_name,
               contact_method, phone, safe_to_contact, province, city, language,
               contact_times, access_needs, notes, created_at, updated_at`

func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	const query = `
        INSERT INTO identities (email, password_hash, role, status, preferred_name, legal_name,
                                contact_method, phone, safe_to_contact, province, city, language,
                                contact_times, access_needs, notes)
        VALUES (LOWER($1),$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		identity.Email,
		identity.PasswordHash,
		identity.Role,
		identity.Status,
		identity.PreferredName,
		identity.LegalName,
		identity.ContactMethod,
		identity.Phone,
		identity.SafeToContact,
		identity.Province,
		identity.City,
		identity.Language,
		identity.ContactTimes,
		identity.AccessNeeds,
		identity.Notes,
	).Scan(&identity.ID, &identity.CreatedAt, &identity.UpdatedAt)
}

func (r *identityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	const query = `
        UPDATE identities
        SET password_hash=$1, role=$2, status=$3, preferred_name=$4, legal_name=$5,
            contact_method=$6, phone=$7, safe_to_contact=$8, province=$9, city=$10,
            language=$11, contact_times=$12, access_needs=$13, notes=$14, updated_at=NOW()
        WHERE id=$15`

	cmd, err := r.pool.Exec(ctx, query,
		identity.PasswordHash,
		identity.Role,
		identity.Status,
		identity.PreferredName,
		identity.LegalName,
		identity.ContactMethod,
		identity.Phone,
		identity.SafeToContact,
		identity.Province,
		identity.City,
		identity.Language,
		identity.ContactTimes,
		identity.AccessNeeds,
		identity.Notes,
		identity.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *identityRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	const query = `SELECT ` + identityColumns + ` FROM identities WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `SELECT ` + identityColumns + ` FROM identities WHERE email=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *identityRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Identity, error) {
	var identity domain.Identity
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&identity.ID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.Role,
		&identity.Status,
		&identity.PreferredName,
		&identity.LegalName,
		&identity.ContactMethod,
		&identity.Phone,
		&identity.SafeToContact,
		&identity.Province,
		&identity.City,
		&identity.Language,
		&identity.ContactTimes,
		&identity.AccessNeeds,
		&identity.Notes,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &identity, nil
}
