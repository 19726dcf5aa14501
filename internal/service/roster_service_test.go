package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/pkg/util"
)

func newRosterFixture() (*RosterService, *fakeLawyerRepo) {
	lawyers := newFakeLawyerRepo()
	return NewRosterService(lawyers, zap.NewNop()), lawyers
}

func TestRosterCreateDefaults(t *testing.T) {
	svc, _ := newRosterFixture()

	lawyer, err := svc.Create(context.Background(), LawyerCreateInput{FullName: "Dana Reeves"})
	require.NoError(t, err)
	assert.Equal(t, domain.LawyerStatusActive, lawyer.Status)
	assert.Equal(t, domain.LawyerAvailable, lawyer.Availability)
	assert.Equal(t, "General Law", lawyer.Specialization)
	assert.False(t, lawyer.AcceptingCases)
}

func TestRosterCreateRequiresName(t *testing.T) {
	svc, _ := newRosterFixture()

	_, err := svc.Create(context.Background(), LawyerCreateInput{})
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Contains(t, domainErr.Details, "fullName")
}

func TestRosterListFiltersByStatusAndAccepting(t *testing.T) {
	svc, _ := newRosterFixture()

	_, err := svc.Create(context.Background(), LawyerCreateInput{FullName: "Active Accepting", AcceptingCases: true})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), LawyerCreateInput{FullName: "Active Closed"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), LawyerCreateInput{FullName: "On Leave", Status: "On Leave", AcceptingCases: true})
	require.NoError(t, err)

	accepting := true
	listed, err := svc.List(context.Background(), RosterQuery{Status: "Active", AcceptingCases: &accepting})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Active Accepting", listed[0].FullName)
}

func TestRosterListRejectsUnknownStatus(t *testing.T) {
	svc, _ := newRosterFixture()

	_, err := svc.List(context.Background(), RosterQuery{Status: "Retired"})
	require.Error(t, err)
}

func TestRosterUpdateTogglesAvailability(t *testing.T) {
	svc, _ := newRosterFixture()
	lawyer, err := svc.Create(context.Background(), LawyerCreateInput{FullName: "Dana Reeves"})
	require.NoError(t, err)

	accepting := true
	status := "On Leave"
	updated, err := svc.Update(context.Background(), lawyer.ID, LawyerUpdateInput{
		AcceptingCases: &accepting,
		Status:         &status,
	})
	require.NoError(t, err)
	assert.True(t, updated.AcceptingCases)
	assert.Equal(t, domain.LawyerStatusOnLeave, updated.Status)
	assert.False(t, updated.Assignable(), "on-leave lawyers are never assignable")
}

func TestRosterUpdateUnknownLawyer(t *testing.T) {
	svc, _ := newRosterFixture()

	name := "Ghost"
	_, err := svc.Update(context.Background(), "missing", LawyerUpdateInput{FullName: &name})
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
