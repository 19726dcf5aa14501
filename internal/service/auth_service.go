package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/justiceconnect/internal/auth"
	"github.com/spec-kit/justiceconnect/internal/config"
	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/repository"
	"github.com/spec-kit/justiceconnect/pkg/util"
)

// RegisterInput carries account creation fields.
type RegisterInput struct {
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=8"`
	Role          string   `json:"role" validate:"required"`
	PreferredName string   `json:"preferredName" validate:"max=120"`
	LegalName     string   `json:"legalName" validate:"max=120"`
	ContactMethod string   `json:"contactMethod"`
	Phone         string   `json:"phone" validate:"max=40"`
	SafeToContact *bool    `json:"safeToContact"`
	Province      string   `json:"province" validate:"max=80"`
	City          string   `json:"city" validate:"max=80"`
	Language      string   `json:"language" validate:"max=80"`
	ContactTimes  string   `json:"contactTimes" validate:"max=240"`
	AccessNeeds   string   `json:"accessNeeds" validate:"max=500"`
	Expertise     []string `json:"expertise" validate:"max=20,dive,max=80"`
	LicenseNumber string   `json:"licenseNumber" validate:"max=80"`
}

// LoginInput carries credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateInput carries mutable profile fields.
type ProfileUpdateInput struct {
	PreferredName *string `json:"preferredName" validate:"omitempty,max=120"`
	LegalName     *string `json:"legalName" validate:"omitempty,max=120"`
	ContactMethod *string `json:"contactMethod"`
	Phone         *string `json:"phone" validate:"omitempty,max=40"`
	SafeToContact *bool   `json:"safeToContact"`
	Province      *string `json:"province" validate:"omitempty,max=80"`
	City          *string `json:"city" validate:"omitempty,max=80"`
	Language      *string `json:"language" validate:"omitempty,max=80"`
	ContactTimes  *string `json:"contactTimes" validate:"omitempty,max=240"`
	AccessNeeds   *string `json:"accessNeeds" validate:"omitempty,max=500"`
	Notes         *string `json:"notes" validate:"omitempty,max=1000"`
}

// AuthService handles registration, login and profile management.
type AuthService struct {
	identities repository.IdentityRepository
	lawyers    repository.LawyerRepository
	resets     repository.PasswordResetRepository
	sessions   auth.SessionStore
	authCfg    config.AuthConfig
	sessionCfg config.SessionConfig
	logger     *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(
	identities repository.IdentityRepository,
	lawyers repository.LawyerRepository,
	resets repository.PasswordResetRepository,
	sessions auth.SessionStore,
	authCfg config.AuthConfig,
	sessionCfg config.SessionConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		identities: identities,
		lawyers:    lawyers,
		resets:     resets,
		sessions:   sessions,
		authCfg:    authCfg,
		sessionCfg: sessionCfg,
		logger:     logger,
	}
}

// Register creates an account. Lawyers additionally receive a roster entry so
// admins can see them without a separate onboarding step; lawyers and admins
// start pending and cannot use privileged routes until approved.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Identity, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, util.NewFieldValidationError(fields)
	}

	role := domain.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	if !domain.ValidRole(role) {
		return nil, util.NewFieldValidationError(map[string]string{"role": "role must be one of survivor, lawyer, admin, donor"})
	}
	contactMethod := domain.ContactMethod(input.ContactMethod)
	if input.ContactMethod == "" {
		contactMethod = domain.ContactEmail
	} else if !domain.ValidContactMethod(contactMethod) {
		return nil, util.NewFieldValidationError(map[string]string{"contactMethod": "invalid contact method"})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if existing, err := s.identities.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, util.NewValidationError("An account with this email already exists", map[string]any{"email": "already registered"})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, util.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.authCfg.BcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	safeToContact := true
	if input.SafeToContact != nil {
		safeToContact = *input.SafeToContact
	}

	identity := &domain.Identity{
		Email:         email,
		PasswordHash:  hash,
		Role:          role,
		Status:        domain.DefaultApproval(role),
		PreferredName: strings.TrimSpace(input.PreferredName),
		LegalName:     strings.TrimSpace(input.LegalName),
		ContactMethod: contactMethod,
		Phone:         strings.TrimSpace(input.Phone),
		SafeToContact: safeToContact,
		Province:      strings.TrimSpace(input.Province),
		City:          strings.TrimSpace(input.City),
		Language:      strings.TrimSpace(input.Language),
		ContactTimes:  strings.TrimSpace(input.ContactTimes),
		AccessNeeds:   strings.TrimSpace(input.AccessNeeds),
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, util.MapError(err)
	}

	if role == domain.RoleLawyer {
		if err := s.createRosterEntry(ctx, identity, input); err != nil {
			// The account is already usable; surface the roster failure in
			// logs and let admins add the entry manually.
			s.logger.Error("roster entry creation failed",
				zap.String("identity_id", identity.ID), zap.Error(err))
		}
	}

	s.logger.Info("identity registered",
		zap.String("identity_id", identity.ID),
		zap.String("role", string(identity.Role)),
		zap.String("status", string(identity.Status)))
	return identity, nil
}

func (s *AuthService) createRosterEntry(ctx context.Context, identity *domain.Identity, input RegisterInput) error {
	specialization := strings.Join(input.Expertise, ", ")
	if specialization == "" {
		specialization = "General Law"
	}
	name := identity.PreferredName
	if name == "" {
		name = identity.LegalName
	}
	if name == "" {
		name = identity.Email
	}
	lawyer := &domain.Lawyer{
		FullName:        name,
		Specialization:  specialization,
		Province:        identity.Province,
		LicenseProvince: identity.Province,
		LicenseNumber:   strings.TrimSpace(input.LicenseNumber),
		Email:           identity.Email,
		Phone:           identity.Phone,
		Availability:    domain.LawyerUnavailable,
		Status:          domain.LawyerStatusActive,
		AcceptingCases:  false,
		IdentityID:      &identity.ID,
	}
	return s.lawyers.Create(ctx, lawyer)
}

// Login verifies credentials and opens a server-side session. The returned
// session token goes into an HttpOnly cookie by the transport layer.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.Session, *domain.Identity, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, nil, util.NewFieldValidationError(fields)
	}

	identity, err := s.identities.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, util.NewUnauthorized("invalid email or password")
		}
		return nil, nil, util.MapError(err)
	}
	if err := auth.ComparePassword(identity.PasswordHash, input.Password); err != nil {
		return nil, nil, util.NewUnauthorized("invalid email or password")
	}

	now := time.Now()
	session := &domain.Session{
		Token:      auth.NewSessionToken(),
		IdentityID: identity.ID,
		Role:       identity.Role,
		Email:      identity.Email,
		Status:     identity.Status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sessionCfg.TTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, util.NewInternalError(err)
	}

	s.logger.Info("login",
		zap.String("identity_id", identity.ID),
		zap.String("role", string(identity.Role)))
	return session, identity, nil
}

// Logout destroys the session behind the given token. Unknown tokens are not
// an error; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return util.NewInternalError(err)
	}
	return nil
}

// RequestPasswordReset issues a reset token for the account. The result is
// identical whether or not the email exists so the endpoint cannot be used to
// probe accounts; the token is delivered out-of-band.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	identity, err := s.identities.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", util.MapError(err)
	}

	token := &repository.PasswordResetToken{
		IdentityID: identity.ID,
		Token:      uuid.NewString(),
		ExpiresAt:  time.Now().Add(time.Duration(s.authCfg.PasswordResetTTLMinutes) * time.Minute),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return "", util.MapError(err)
	}

	s.logger.Info("password reset requested", zap.String("identity_id", identity.ID))
	return token.Token, nil
}

// ResetPassword consumes a reset token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	if len(newPassword) < 8 {
		return util.NewFieldValidationError(map[string]string{"password": "password must be at least 8 characters"})
	}

	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewValidationError("invalid or expired reset token", nil)
		}
		return util.MapError(err)
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return util.NewValidationError("invalid or expired reset token", nil)
	}

	identity, err := s.identities.GetByID(ctx, token.IdentityID)
	if err != nil {
		return util.MapError(err)
	}
	hash, err := auth.HashPassword(newPassword, s.authCfg.BcryptCost)
	if err != nil {
		return util.NewInternalError(err)
	}
	identity.PasswordHash = hash
	if err := s.identities.Update(ctx, identity); err != nil {
		return util.MapError(err)
	}
	if err := s.resets.MarkUsed(ctx, token.ID); err != nil {
		return util.MapError(err)
	}

	s.logger.Info("password reset completed", zap.String("identity_id", identity.ID))
	return nil
}

// GetProfile returns the account for the given identity.
func (s *AuthService) GetProfile(ctx context.Context, identityID string) (*domain.Identity, error) {
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return identity, nil
}

// UpdateProfile applies the provided fields to the account. Role, email and
// approval status are not profile fields and cannot change here.
func (s *AuthService) UpdateProfile(ctx context.Context, identityID string, input ProfileUpdateInput) (*domain.Identity, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, util.NewFieldValidationError(fields)
	}

	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, util.MapError(err)
	}

	if input.ContactMethod != nil {
		method := domain.ContactMethod(*input.ContactMethod)
		if !domain.ValidContactMethod(method) {
			return nil, util.NewFieldValidationError(map[string]string{"contactMethod": "invalid contact method"})
		}
		identity.ContactMethod = method
	}
	if input.PreferredName != nil {
		identity.PreferredName = strings.TrimSpace(*input.PreferredName)
	}
	if input.LegalName != nil {
		identity.LegalName = strings.TrimSpace(*input.LegalName)
	}
	if input.Phone != nil {
		identity.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.SafeToContact != nil {
		identity.SafeToContact = *input.SafeToContact
	}
	if input.Province != nil {
		identity.Province = strings.TrimSpace(*input.Province)
	}
	if input.City != nil {
		identity.City = strings.TrimSpace(*input.City)
	}
	if input.Language != nil {
		identity.Language = strings.TrimSpace(*input.Language)
	}
	if input.ContactTimes != nil {
		identity.ContactTimes = strings.TrimSpace(*input.ContactTimes)
	}
	if input.AccessNeeds != nil {
		identity.AccessNeeds = strings.TrimSpace(*input.AccessNeeds)
	}
	if input.Notes != nil {
		identity.Notes = strings.TrimSpace(*input.Notes)
	}

	if err := s.identities.Update(ctx, identity); err != nil {
		return nil, util.MapError(err)
	}
	return identity, nil
}
