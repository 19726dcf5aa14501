package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	allowed := []struct{ from, to CaseStatus }{
		{CaseStatusSubmitted, CaseStatusReview},
		{CaseStatusSubmitted, CaseStatusAssigned},
		{CaseStatusReview, CaseStatusAssigned},
		{CaseStatusReview, CaseStatusClosed},
		{CaseStatusAssigned, CaseStatusClosed},
	}
	for _, tc := range allowed {
		assert.True(t, ValidTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	blocked := []struct{ from, to CaseStatus }{
		{CaseStatusReview, CaseStatusSubmitted},
		{CaseStatusAssigned, CaseStatusReview},
		{CaseStatusAssigned, CaseStatusSubmitted},
		{CaseStatusClosed, CaseStatusAssigned},
		{CaseStatusClosed, CaseStatusSubmitted},
		{CaseStatusSubmitted, CaseStatusClosed},
	}
	for _, tc := range blocked {
		assert.False(t, ValidTransition(tc.from, tc.to), "%s -> %s must be blocked", tc.from, tc.to)
	}
}

func TestAssigned(t *testing.T) {
	var c Case
	assert.False(t, c.Assigned())

	empty := ""
	c.AssignedLawyerID = &empty
	assert.False(t, c.Assigned())

	id := "lawyer-1"
	c.AssignedLawyerID = &id
	assert.True(t, c.Assigned())
}

func TestDefaultApproval(t *testing.T) {
	assert.Equal(t, ApprovalApproved, DefaultApproval(RoleSurvivor))
	assert.Equal(t, ApprovalApproved, DefaultApproval(RoleDonor))
	assert.Equal(t, ApprovalPending, DefaultApproval(RoleLawyer))
	assert.Equal(t, ApprovalPending, DefaultApproval(RoleAdmin))
}
