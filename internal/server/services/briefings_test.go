package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murillocortez/olhar-autoral/internal/common"
	"github.com/murillocortez/olhar-autoral/internal/dbx"
	"github.com/murillocortez/olhar-autoral/internal/server/models"
	"github.com/murillocortez/olhar-autoral/internal/server/repositories/briefings"
)

type fakeBriefingsRepo struct {
	created   []*models.Briefing
	createErr error

	listLimit int
	listOut   []models.Briefing
	listErr   error

	marked  []string
	markErr error
}

func (f *fakeBriefingsRepo) Create(ctx context.Context, b *models.Briefing) (*models.Briefing, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.CreatedAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBriefingsRepo) ListRecent(ctx context.Context, limit int) ([]models.Briefing, error) {
	f.listLimit = limit
	return f.listOut, f.listErr
}

func (f *fakeBriefingsRepo) MarkNotified(ctx context.Context, id string, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, id)
	return nil
}

type fakeRepoMgr struct {
	repo *fakeBriefingsRepo
}

func (m *fakeRepoMgr) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoMgr) Briefings(dbx.DBTX) briefings.Repository    { return m.repo }

type fakeNotifier struct {
	got []*models.Briefing
	err error
	ctx context.Context
}

func (n *fakeNotifier) Notify(ctx context.Context, b *models.Briefing) error {
	n.ctx = ctx
	n.got = append(n.got, b)
	return n.err
}

func newService(repo *fakeBriefingsRepo, n *fakeNotifier) *BriefingService {
	s := NewBriefingService(nil, &fakeRepoMgr{repo: repo}, n, nil)
	s.newID = func() string { return "id-1" }
	s.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 1, 0, time.UTC) }
	return s
}

func valid() *models.Briefing {
	return &models.Briefing{Name: "  Ana ", Email: "ana@example.com ", Goal: "Ensaio"}
}

func TestSubmit_Success(t *testing.T) {
	repo := &fakeBriefingsRepo{}
	n := &fakeNotifier{}
	s := newService(repo, n)

	got, err := s.Submit(context.Background(), valid())
	require.NoError(t, err)

	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)
	require.Len(t, n.got, 1)
	assert.Equal(t, []string{"id-1"}, repo.marked)
	require.NotNil(t, got.NotifiedAt)
}

func TestSubmit_NotificationFailureIsSwallowed(t *testing.T) {
	repo := &fakeBriefingsRepo{}
	n := &fakeNotifier{err: errors.New("function unreachable")}
	s := newService(repo, n)

	got, err := s.Submit(context.Background(), valid())
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Len(t, repo.created, 1)
	assert.Empty(t, repo.marked)
	assert.Nil(t, got.NotifiedAt)
}

func TestSubmit_MarkFailureIsSwallowed(t *testing.T) {
	repo := &fakeBriefingsRepo{markErr: common.ErrorNotFound}
	s := newService(repo, &fakeNotifier{})

	got, err := s.Submit(context.Background(), valid())
	require.NoError(t, err)
	assert.Nil(t, got.NotifiedAt)
}

func TestSubmit_NotifyOutlivesRequestContext(t *testing.T) {
	n := &fakeNotifier{}
	s := newService(&fakeBriefingsRepo{}, n)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := s.Submit(ctx, valid())
	require.NoError(t, err)
	cancel()

	assert.NoError(t, n.ctx.Err())
}

func TestSubmit_InsertFailure(t *testing.T) {
	repo := &fakeBriefingsRepo{createErr: errors.New("db down")}
	n := &fakeNotifier{}
	s := newService(repo, n)

	_, err := s.Submit(context.Background(), valid())
	require.Error(t, err)
	assert.ErrorContains(t, err, "db down")
	assert.False(t, errors.Is(err, common.ErrValidation))
	assert.Empty(t, n.got, "nothing is announced without a stored row")
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   *models.Briefing
	}{
		{"missing name", &models.Briefing{Email: "ana@example.com"}},
		{"blank name", &models.Briefing{Name: "   ", Email: "ana@example.com"}},
		{"missing email", &models.Briefing{Name: "Ana"}},
		{"bad email", &models.Briefing{Name: "Ana", Email: "ana.example.com"}},
		{"display name form", &models.Briefing{Name: "Ana", Email: "Ana <ana@example.com>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBriefingsRepo{}
			s := newService(repo, &fakeNotifier{})

			_, err := s.Submit(context.Background(), tt.in)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Empty(t, repo.created)
		})
	}
}

func TestRecent_Limits(t *testing.T) {
	repo := &fakeBriefingsRepo{listOut: []models.Briefing{{ID: "b-1"}}}
	s := newService(repo, &fakeNotifier{})

	got, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, DefaultRecentLimit, repo.listLimit)

	_, _ = s.Recent(context.Background(), 10_000)
	assert.Equal(t, MaxRecentLimit, repo.listLimit)

	_, _ = s.Recent(context.Background(), 7)
	assert.Equal(t, 7, repo.listLimit)

	repo.listErr = errors.New("db down")
	_, err = s.Recent(context.Background(), 7)
	assert.ErrorContains(t, err, "error listing briefings")
}
