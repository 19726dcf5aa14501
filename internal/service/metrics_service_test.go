package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/justiceconnect/internal/domain"
)

func TestSnapshotCountsHighPriorityUnassigned(t *testing.T) {
	cases := newFakeCaseRepo()
	lawyers := newFakeLawyerRepo()
	svc := NewMetricsService(cases, lawyers)

	urgentOpen := &domain.Case{OwnerID: "o1", CaseID: "JC-2026-001", Urgency: domain.UrgencyHigh, Status: domain.CaseStatusSubmitted}
	require.NoError(t, cases.Create(context.Background(), urgentOpen))

	lawyerID := "lawyer-1"
	urgentAssigned := &domain.Case{OwnerID: "o2", CaseID: "JC-2026-002", Urgency: domain.UrgencyHigh, Status: domain.CaseStatusAssigned, AssignedLawyerID: &lawyerID}
	require.NoError(t, cases.Create(context.Background(), urgentAssigned))

	mild := &domain.Case{OwnerID: "o3", CaseID: "JC-2026-003", Urgency: domain.UrgencyLow, Status: domain.CaseStatusSubmitted}
	require.NoError(t, cases.Create(context.Background(), mild))

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.HighPriorityCases)
	assert.Equal(t, "OK", snapshot.Security)
}

func TestSnapshotCountsAvailableLawyers(t *testing.T) {
	cases := newFakeCaseRepo()
	lawyers := newFakeLawyerRepo()
	svc := NewMetricsService(cases, lawyers)

	active := &domain.Lawyer{FullName: "A", Status: domain.LawyerStatusActive, AcceptingCases: true}
	require.NoError(t, lawyers.Create(context.Background(), active))
	notAccepting := &domain.Lawyer{FullName: "B", Status: domain.LawyerStatusActive, AcceptingCases: false}
	require.NoError(t, lawyers.Create(context.Background(), notAccepting))
	onLeave := &domain.Lawyer{FullName: "C", Status: domain.LawyerStatusOnLeave, AcceptingCases: true}
	require.NoError(t, lawyers.Create(context.Background(), onLeave))

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.LawyersAvailable)
}

func TestSnapshotCountsSurvivorsSupportedInTrailingWeek(t *testing.T) {
	cases := newFakeCaseRepo()
	lawyers := newFakeLawyerRepo()
	svc := NewMetricsService(cases, lawyers)

	recent := &domain.Case{OwnerID: "o1", CaseID: "JC-2026-001", Urgency: domain.UrgencyLow, Status: domain.CaseStatusClosed}
	require.NoError(t, cases.Create(context.Background(), recent))

	stale := &domain.Case{OwnerID: "o2", CaseID: "JC-2026-002", Urgency: domain.UrgencyLow, Status: domain.CaseStatusAssigned}
	require.NoError(t, cases.Create(context.Background(), stale))
	cases.cases[stale.ID].UpdatedAt = time.Now().Add(-8 * 24 * time.Hour)

	open := &domain.Case{OwnerID: "o3", CaseID: "JC-2026-003", Urgency: domain.UrgencyLow, Status: domain.CaseStatusSubmitted}
	require.NoError(t, cases.Create(context.Background(), open))

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.SurvivorsSupported)
}
