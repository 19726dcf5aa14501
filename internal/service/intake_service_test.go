package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/justiceconnect/internal/config"
	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/events"
	"github.com/spec-kit/justiceconnect/pkg/util"
)

func testUploadCfg() config.UploadConfig {
	return config.UploadConfig{Dir: "uploads", MaxFiles: 5, MaxFileMB: 10, MaxCombinedMB: 25}
}

func newIntakeFixture() (*IntakeService, *fakeCaseRepo, *fakeAttachmentRepo, *fakeFileStore, events.Dispatcher) {
	cases := newFakeCaseRepo()
	attachments := newFakeAttachmentRepo()
	files := newFakeFileStore()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewIntakeService(cases, attachments, files, dispatcher, testUploadCfg(), zap.NewNop())
	return svc, cases, attachments, files, dispatcher
}

func validIntake() IntakeInput {
	return IntakeInput{
		PreferredName:  "Jordan",
		ContactMethod:  "email",
		ContactValue:   "jordan@example.com",
		Province:       "Ontario",
		IssueCategory:  "Family Law",
		Situation:      strings.Repeat("The situation needs help. ", 3),
		Urgency:        "High",
		DesiredOutcome: "Protection order",
	}
}

func textUpload(name string, size int) UploadFile {
	content := strings.Repeat("a", size)
	return UploadFile{
		OriginalName: name,
		SizeBytes:    int64(size),
		MimeType:     "text/plain",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestSubmitCaseAssignsSequentialIdentifier(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()
	year := time.Now().Year()

	first, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)
	second, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("JC-%d-001", year), first.CaseID)
	assert.Equal(t, fmt.Sprintf("JC-%d-002", year), second.CaseID)
	assert.Equal(t, domain.CaseStatusSubmitted, first.Status)
	assert.Equal(t, domain.UrgencyHigh, first.Priority)
}

func TestSubmitCaseIdentifierGrowsPastPadding(t *testing.T) {
	svc, cases, _, _, _ := newIntakeFixture()
	year := time.Now().Year()
	cases.counters[year] = 999

	submitted, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("JC-%d-1000", year), submitted.CaseID)
}

func TestSubmitCaseConcurrentIdentifiersAreUnique(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()

	const n = 20
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			submitted, err := svc.SubmitCase(context.Background(), fmt.Sprintf("owner-%d", idx), validIntake(), nil)
			if err == nil {
				results[idx] = submitted.CaseID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range results {
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate case id %s", id)
		seen[id] = true
	}
}

func TestSubmitCaseValidationCollectsFieldErrors(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()

	input := IntakeInput{Urgency: "Critical", ContactMethod: "fax"}
	_, err := svc.SubmitCase(context.Background(), "owner-1", input, nil)
	require.Error(t, err)

	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "urgency")
	assert.Contains(t, domainErr.Details, "contactMethod")
	assert.Contains(t, domainErr.Details, "province")
	assert.Contains(t, domainErr.Details, "situation")
}

func TestSubmitCaseRequiresPreferredName(t *testing.T) {
	svc, cases, _, _, _ := newIntakeFixture()

	input := validIntake()
	input.PreferredName = ""
	_, err := svc.SubmitCase(context.Background(), "owner-1", input, nil)
	require.Error(t, err)

	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "preferredName")
	assert.Empty(t, cases.cases, "no case may be created without a preferred name")
}

func TestSubmitCaseAcceptsBriefSituationWithoutContactValue(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()

	input := validIntake()
	input.Situation = "Need help now."
	input.ContactValue = ""
	submitted, err := svc.SubmitCase(context.Background(), "owner-1", input, nil)
	require.NoError(t, err)
	assert.Equal(t, "Need help now.", submitted.Situation)
	assert.Equal(t, "", submitted.ContactValue)
}

func TestSubmitCaseRejectsDisallowedFileType(t *testing.T) {
	svc, _, _, files, _ := newIntakeFixture()

	upload := textUpload("malware.exe", 100)
	upload.MimeType = "application/x-msdownload"
	_, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), []UploadFile{upload})
	require.Error(t, err)

	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Contains(t, domainErr.Details, "attachments")
	assert.Empty(t, files.saved, "no file may be written when validation fails")
}

func TestSubmitCaseRejectsTooManyFiles(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()

	uploads := make([]UploadFile, 6)
	for i := range uploads {
		uploads[i] = textUpload(fmt.Sprintf("doc-%d.txt", i), 10)
	}
	_, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), uploads)
	require.Error(t, err)

	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Contains(t, domainErr.Details, "attachments")
}

func TestSubmitCaseRejectsOversizedFile(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()

	upload := textUpload("big.txt", 10)
	upload.SizeBytes = 11 * 1024 * 1024
	_, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), []UploadFile{upload})
	require.Error(t, err)
}

func TestSubmitCaseStoresAttachments(t *testing.T) {
	svc, _, attachments, files, _ := newIntakeFixture()

	uploads := []UploadFile{textUpload("evidence.txt", 64), textUpload("notes.txt", 32)}
	submitted, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), uploads)
	require.NoError(t, err)

	assert.Len(t, submitted.Attachments, 2)
	assert.Len(t, files.saved, 2)
	stored, err := attachments.ListByCase(context.Background(), submitted.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, "evidence.txt", stored[0].OriginalName)
}

func TestSubmitCasePublishesCreatedEvent(t *testing.T) {
	svc, _, _, _, dispatcher := newIntakeFixture()

	var received []events.Event
	dispatcher.Subscribe(events.EventCaseCreated, func(_ context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})

	submitted, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, submitted.CaseID, received[0].CaseID)
}

func TestGetCaseOwnerAndAdminAccess(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()
	submitted, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)

	_, err = svc.GetCase(context.Background(), submitted.ID, "owner-1", domain.RoleSurvivor)
	assert.NoError(t, err)

	_, err = svc.GetCase(context.Background(), submitted.ID, "someone-else", domain.RoleAdmin)
	assert.NoError(t, err)

	_, err = svc.GetCase(context.Background(), submitted.ID, "someone-else", domain.RoleSurvivor)
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code, "non-owners must not learn the case exists")
}

func TestLatestReturnsMostRecentlyUpdated(t *testing.T) {
	svc, cases, _, _, _ := newIntakeFixture()
	first, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)
	_, err = svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)

	// Touch the first case so it becomes the most recent.
	stored, err := cases.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	require.NoError(t, cases.Update(context.Background(), stored))

	latest, err := svc.Latest(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
}

func TestLatestWithoutCasesIsNotFound(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()
	_, err := svc.Latest(context.Background(), "owner-1")
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestDeleteOwnedRemovesCaseAndFiles(t *testing.T) {
	svc, cases, attachments, files, _ := newIntakeFixture()
	submitted, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), []UploadFile{textUpload("doc.txt", 16)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOwned(context.Background(), submitted.ID, "owner-1"))

	_, err = cases.GetByID(context.Background(), submitted.ID)
	assert.Error(t, err)
	stored, err := attachments.ListByCase(context.Background(), submitted.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Len(t, files.removed, 1)
}

func TestDeleteOwnedBlockedOnceAssigned(t *testing.T) {
	svc, cases, _, _, _ := newIntakeFixture()
	submitted, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)

	lawyerID := "lawyer-1"
	stored, err := cases.GetByID(context.Background(), submitted.ID)
	require.NoError(t, err)
	stored.AssignedLawyerID = &lawyerID
	stored.Status = domain.CaseStatusAssigned
	require.NoError(t, cases.Update(context.Background(), stored))

	err = svc.DeleteOwned(context.Background(), submitted.ID, "owner-1")
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, 409, domainErr.HTTPStatus)
}

func TestDeleteOwnedByStrangerIsNotFound(t *testing.T) {
	svc, _, _, _, _ := newIntakeFixture()
	submitted, err := svc.SubmitCase(context.Background(), "owner-1", validIntake(), nil)
	require.NoError(t, err)

	err = svc.DeleteOwned(context.Background(), submitted.ID, "intruder")
	require.Error(t, err)
	var domainErr *util.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
