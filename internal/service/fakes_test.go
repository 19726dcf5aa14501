package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/justiceconnect/internal/domain"
	"github.com/spec-kit/justiceconnect/internal/repository"
)

type fakeCaseRepo struct {
	mu       sync.Mutex
	cases    map[string]*domain.Case
	counters map[int]int
	nextID   int
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{
		cases:    make(map[string]*domain.Case),
		counters: make(map[int]int),
	}
}

func (r *fakeCaseRepo) Create(_ context.Context, c *domain.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = fmt.Sprintf("case-%d", r.nextID)
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	clone := *c
	r.cases[c.ID] = &clone
	return nil
}

func (r *fakeCaseRepo) Update(_ context.Context, c *domain.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cases[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	c.UpdatedAt = time.Now()
	clone := *c
	r.cases[c.ID] = &clone
	return nil
}

func (r *fakeCaseRepo) UpdateAssignment(_ context.Context, id string, update repository.AssignmentUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.cases[id]
	if !ok {
		return pgx.ErrNoRows
	}
	lawyerID := update.LawyerID
	stored.AssignedLawyerID = &lawyerID
	stored.AssignedLawyerName = update.LawyerName
	stored.Priority = update.Priority
	stored.Status = update.Status
	stored.InternalNotes = update.InternalNotes
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeCaseRepo) GetByID(_ context.Context, id string) (*domain.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeCaseRepo) GetByCaseID(_ context.Context, caseID string) (*domain.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.cases {
		if stored.CaseID == caseID {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCaseRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Case
	for _, stored := range r.cases {
		if stored.OwnerID == ownerID {
			result = append(result, *stored)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (r *fakeCaseRepo) LatestByOwner(ctx context.Context, ownerID string) (*domain.Case, error) {
	owned, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return nil, pgx.ErrNoRows
	}
	clone := owned[0]
	return &clone, nil
}

func (r *fakeCaseRepo) ListByStatuses(_ context.Context, statuses []domain.CaseStatus) ([]domain.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[domain.CaseStatus]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}
	var result []domain.Case
	for _, stored := range r.cases {
		if wanted[stored.Status] {
			result = append(result, *stored)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeCaseRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.cases[id]
	if !ok || stored.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(r.cases, id)
	return nil
}

func (r *fakeCaseRepo) NextCaseSequence(_ context.Context, year int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[year]++
	return r.counters[year], nil
}

func (r *fakeCaseRepo) CountHighPriorityUnassigned(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, stored := range r.cases {
		open := stored.Status == domain.CaseStatusSubmitted || stored.Status == domain.CaseStatusReview
		if stored.Urgency == domain.UrgencyHigh && open && !stored.Assigned() {
			count++
		}
	}
	return count, nil
}

func (r *fakeCaseRepo) CountSupportedSince(_ context.Context, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, stored := range r.cases {
		supported := stored.Status == domain.CaseStatusAssigned || stored.Status == domain.CaseStatusClosed
		if supported && !stored.UpdatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type fakeAttachmentRepo struct {
	mu          sync.Mutex
	attachments map[string][]domain.Attachment
	nextID      int
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[string][]domain.Attachment)}
}

func (r *fakeAttachmentRepo) Create(_ context.Context, attachment *domain.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	attachment.ID = fmt.Sprintf("att-%d", r.nextID)
	attachment.CreatedAt = time.Now()
	r.attachments[attachment.CaseID] = append(r.attachments[attachment.CaseID], *attachment)
	return nil
}

func (r *fakeAttachmentRepo) ListByCase(_ context.Context, caseID string) ([]domain.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Attachment{}, r.attachments[caseID]...), nil
}

func (r *fakeAttachmentRepo) DeleteByCase(_ context.Context, caseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attachments, caseID)
	return nil
}

type fakeLawyerRepo struct {
	mu      sync.Mutex
	lawyers map[string]*domain.Lawyer
	nextID  int
}

func newFakeLawyerRepo() *fakeLawyerRepo {
	return &fakeLawyerRepo{lawyers: make(map[string]*domain.Lawyer)}
}

func (r *fakeLawyerRepo) Create(_ context.Context, lawyer *domain.Lawyer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	lawyer.ID = fmt.Sprintf("lawyer-%d", r.nextID)
	now := time.Now()
	lawyer.CreatedAt = now
	lawyer.UpdatedAt = now
	clone := *lawyer
	r.lawyers[lawyer.ID] = &clone
	return nil
}

func (r *fakeLawyerRepo) Update(_ context.Context, lawyer *domain.Lawyer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lawyers[lawyer.ID]; !ok {
		return pgx.ErrNoRows
	}
	lawyer.UpdatedAt = time.Now()
	clone := *lawyer
	r.lawyers[lawyer.ID] = &clone
	return nil
}

func (r *fakeLawyerRepo) GetByID(_ context.Context, id string) (*domain.Lawyer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.lawyers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeLawyerRepo) List(_ context.Context, filter repository.LawyerFilter) ([]domain.Lawyer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Lawyer
	for _, stored := range r.lawyers {
		if filter.Status != nil && stored.Status != *filter.Status {
			continue
		}
		if filter.AcceptingCases != nil && stored.AcceptingCases != *filter.AcceptingCases {
			continue
		}
		if filter.Province != nil && stored.Province != *filter.Province {
			continue
		}
		result = append(result, *stored)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FullName < result[j].FullName
	})
	return result, nil
}

func (r *fakeLawyerRepo) CountAvailable(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, stored := range r.lawyers {
		if stored.Assignable() {
			count++
		}
	}
	return count, nil
}

type fakeIdentityRepo struct {
	mu         sync.Mutex
	identities map[string]*domain.Identity
	nextID     int
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]*domain.Identity)}
}

func (r *fakeIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	identity.ID = fmt.Sprintf("identity-%d", r.nextID)
	now := time.Now()
	identity.CreatedAt = now
	identity.UpdatedAt = now
	clone := *identity
	r.identities[identity.ID] = &clone
	return nil
}

func (r *fakeIdentityRepo) Update(_ context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.identities[identity.ID]; !ok {
		return pgx.ErrNoRows
	}
	identity.UpdatedAt = time.Now()
	clone := *identity
	r.identities[identity.ID] = &clone
	return nil
}

func (r *fakeIdentityRepo) GetByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.identities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeIdentityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.identities {
		if stored.Email == email {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.CaseHistory
	nextID  int
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.CaseHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = fmt.Sprintf("hist-%d", r.nextID)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByCase(_ context.Context, caseID string) ([]domain.CaseHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.CaseHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].CaseID == caseID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*repository.PasswordResetToken
	nextID int
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	token.ID = fmt.Sprintf("reset-%d", r.nextID)
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, stored := range r.tokens {
		if stored.ID == id {
			stored.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeFileStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	removed []string
	nextID  int
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: make(map[string][]byte)}
}

func (s *fakeFileStore) Save(originalName string, r io.Reader) (string, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	name := fmt.Sprintf("%d-%s", s.nextID, originalName)
	s.saved[name] = data
	return name, "/tmp/fake/" + name, nil
}

func (s *fakeFileStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, name)
	s.removed = append(s.removed, name)
	return nil
}
