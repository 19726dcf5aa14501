package service

import (
	"context"
	"time"

	"github.com/spec-kit/justiceconnect/internal/repository"
	"github.com/spec-kit/justiceconnect/pkg/util"
)

// DashboardSnapshot is the admin dashboard metric set.
type DashboardSnapshot struct {
	HighPriorityCases  int    `json:"highPriorityCases"`
	LawyersAvailable   int    `json:"lawyersAvailable"`
	SurvivorsSupported int    `json:"survivorsSupported"`
	Security           string `json:"security"`
}

// MetricsService computes dashboard numbers from live data.
type MetricsService struct {
	cases   repository.CaseRepository
	lawyers repository.LawyerRepository

	now func() time.Time
}

// NewMetricsService constructs the service.
func NewMetricsService(cases repository.CaseRepository, lawyers repository.LawyerRepository) *MetricsService {
	return &MetricsService{cases: cases, lawyers: lawyers, now: time.Now}
}

// Snapshot computes the current dashboard values. High priority counts
// unassigned urgent cases still in triage; supported counts cases that
// reached Assigned or Closed within the trailing week.
func (s *MetricsService) Snapshot(ctx context.Context) (*DashboardSnapshot, error) {
	highPriority, err := s.cases.CountHighPriorityUnassigned(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	available, err := s.lawyers.CountAvailable(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	supported, err := s.cases.CountSupportedSince(ctx, s.now().Add(-7*24*time.Hour))
	if err != nil {
		return nil, util.MapError(err)
	}

	return &DashboardSnapshot{
		HighPriorityCases:  highPriority,
		LawyersAvailable:   available,
		SurvivorsSupported: supported,
		Security:           "OK",
	}, nil
}
