package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/repository"
	"github.com/spec-kit/justiceconnect/pkg/util"
)

// LawyerCreateInput carries the admin roster creation form.
type LawyerCreateInput struct {
	FullName        string `json:"fullName" validate:"required,max=120"`
	Specialization  string `json:"specialization" validate:"max=240"`
	Province        string `json:"province" validate:"max=80"`
	LicenseProvince string `json:"licenseProvince" validate:"max=80"`
	LicenseNumber   string `json:"licenseNumber" validate:"max=80"`
	YearsExperience int    `json:"yearsExperience" validate:"min=0,max=80"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"max=40"`
	Availability    string `json:"availability"`
	Status          string `json:"status"`
	AcceptingCases  bool   `json:"acceptingCases"`
}

// LawyerUpdateInput carries mutable roster fields.
type LawyerUpdateInput struct {
	FullName        *string `json:"fullName" validate:"omitempty,max=120"`
	Specialization  *string `json:"specialization" validate:"omitempty,max=240"`
	Province        *string `json:"province" validate:"omitempty,max=80"`
	LicenseProvince *string `json:"licenseProvince" validate:"omitempty,max=80"`
	LicenseNumber   *string `json:"licenseNumber" validate:"omitempty,max=80"`
	YearsExperience *int    `json:"yearsExperience" validate:"omitempty,min=0,max=80"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,max=40"`
	Availability    *string `json:"availability"`
	Status          *string `json:"status"`
	AcceptingCases  *bool   `json:"acceptingCases"`
}

// RosterQuery narrows the roster listing.
type RosterQuery struct {
	Status         string
	AcceptingCases *bool
	Province       string
	Limit          int
	Offset         int
}

// RosterService manages the lawyer directory used for assignment.
type RosterService struct {
	lawyers repository.LawyerRepository
	logger  *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(lawyers repository.LawyerRepository, logger *zap.Logger) *RosterService {
	return &RosterService{lawyers: lawyers, logger: logger}
}

// List returns roster entries matching the query, ordered by name.
func (s *RosterService) List(ctx context.Context, query RosterQuery) ([]domain.Lawyer, error) {
	filter := repository.LawyerFilter{
		AcceptingCases: query.AcceptingCases,
		Limit:          query.Limit,
		Offset:         query.Offset,
	}
	if query.Status != "" {
		status := domain.LawyerStatus(query.Status)
		if !validLawyerStatus(status) {
			return nil, util.NewFieldValidationError(map[string]string{"status": "invalid roster status"})
		}
		filter.Status = &status
	}
	if query.Province != "" {
		province := query.Province
		filter.Province = &province
	}

	lawyers, err := s.lawyers.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return lawyers, nil
}

// Get returns one roster entry.
func (s *RosterService) Get(ctx context.Context, id string) (*domain.Lawyer, error) {
	lawyer, err := s.lawyers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("lawyer", nil)
		}
		return nil, util.MapError(err)
	}
	return lawyer, nil
}

// Create adds a roster entry directly, for lawyers who never registered an
// account.
func (s *RosterService) Create(ctx context.Context, input LawyerCreateInput) (*domain.Lawyer, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, util.NewFieldValidationError(fields)
	}

	availability := domain.LawyerAvailability(input.Availability)
	if input.Availability == "" {
		availability = domain.LawyerAvailable
	} else if !validLawyerAvailability(availability) {
		return nil, util.NewFieldValidationError(map[string]string{"availability": "invalid availability"})
	}
	status := domain.LawyerStatus(input.Status)
	if input.Status == "" {
		status = domain.LawyerStatusActive
	} else if !validLawyerStatus(status) {
		return nil, util.NewFieldValidationError(map[string]string{"status": "invalid roster status"})
	}
	specialization := strings.TrimSpace(input.Specialization)
	if specialization == "" {
		specialization = "General Law"
	}

	lawyer := &domain.Lawyer{
		FullName:        strings.TrimSpace(input.FullName),
		Specialization:  specialization,
		Province:        strings.TrimSpace(input.Province),
		LicenseProvince: strings.TrimSpace(input.LicenseProvince),
		LicenseNumber:   strings.TrimSpace(input.LicenseNumber),
		YearsExperience: input.YearsExperience,
		Email:           strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:           strings.TrimSpace(input.Phone),
		Availability:    availability,
		Status:          status,
		AcceptingCases:  input.AcceptingCases,
	}
	if err := s.lawyers.Create(ctx, lawyer); err != nil {
		return nil, util.MapError(err)
	}

	s.logger.Info("lawyer added to roster", zap.String("lawyer_id", lawyer.ID))
	return lawyer, nil
}

// Update applies the provided roster fields.
func (s *RosterService) Update(ctx context.Context, id string, input LawyerUpdateInput) (*domain.Lawyer, error) {
	if fields := ValidateStruct(input); len(fields) > 0 {
		return nil, util.NewFieldValidationError(fields)
	}

	lawyer, err := s.lawyers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("lawyer", nil)
		}
		return nil, util.MapError(err)
	}

	if input.Availability != nil {
		availability := domain.LawyerAvailability(*input.Availability)
		if !validLawyerAvailability(availability) {
			return nil, util.NewFieldValidationError(map[string]string{"availability": "invalid availability"})
		}
		lawyer.Availability = availability
	}
	if input.Status != nil {
		status := domain.LawyerStatus(*input.Status)
		if !validLawyerStatus(status) {
			return nil, util.NewFieldValidationError(map[string]string{"status": "invalid roster status"})
		}
		lawyer.Status = status
	}
	if input.FullName != nil {
		lawyer.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Specialization != nil {
		lawyer.Specialization = strings.TrimSpace(*input.Specialization)
	}
	if input.Province != nil {
		lawyer.Province = strings.TrimSpace(*input.Province)
	}
	if input.LicenseProvince != nil {
		lawyer.LicenseProvince = strings.TrimSpace(*input.LicenseProvince)
	}
	if input.LicenseNumber != nil {
		lawyer.LicenseNumber = strings.TrimSpace(*input.LicenseNumber)
	}
	if input.YearsExperience != nil {
		lawyer.YearsExperience = *input.YearsExperience
	}
	if input.Email != nil {
		lawyer.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Phone != nil {
		lawyer.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.AcceptingCases != nil {
		lawyer.AcceptingCases = *input.AcceptingCases
	}

	if err := s.lawyers.Update(ctx, lawyer); err != nil {
		return nil, util.MapError(err)
	}
	return lawyer, nil
}

func validLawyerStatus(s domain.LawyerStatus) bool {
	switch s {
	case domain.LawyerStatusActive, domain.LawyerStatusOnLeave, domain.LawyerStatusInactive:
		return true
	}
	return false
}

func validLawyerAvailability(a domain.LawyerAvailability) bool {
	switch a {
	case domain.LawyerAvailable, domain.LawyerBusy, domain.LawyerUnavailable:
		return true
	}
	return false
}
