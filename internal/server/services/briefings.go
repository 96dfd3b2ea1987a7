package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/murillocortez/olhar-autoral/internal/common"
	"github.com/murillocortez/olhar-autoral/internal/dbx"
	"github.com/murillocortez/olhar-autoral/internal/logging"
	"github.com/murillocortez/olhar-autoral/internal/server/models"
	"github.com/murillocortez/olhar-autoral/internal/server/notify"
	"github.com/murillocortez/olhar-autoral/internal/server/repositories/repomanager"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 200
)

type BriefingService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	notifier    notify.Notifier
	logger      logging.Logger
	now         func() time.Time
	newID       func() string
}

func NewBriefingService(db dbx.DBTX, m repomanager.RepositoryManager, n notify.Notifier, logger logging.Logger) *BriefingService {
	if n == nil {
		n = notify.Nop{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &BriefingService{
		db:          db,
		repomanager: m,
		notifier:    n,
		logger:      logger.With("module", "briefings"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Validate trims b and checks the fields the form requires.
func Validate(b *models.Briefing) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	b.Profession = strings.TrimSpace(b.Profession)
	b.Phone = strings.TrimSpace(b.Phone)

	if b.Name == "" || b.Email == "" {
		return fmt.Errorf("%w: name and email are required", common.ErrValidation)
	}
	addr, err := mail.ParseAddress(b.Email)
	if err != nil || addr.Address != b.Email {
		return fmt.Errorf("%w: invalid email %q", common.ErrValidation, b.Email)
	}
	return nil
}

// Submit stores a briefing and then announces it. Only a failed insert is an
// error; a failed announcement is logged and the stored briefing is still
// returned.
func (s *BriefingService) Submit(ctx context.Context, b *models.Briefing) (*models.Briefing, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}

	b.ID = s.newID()
	repo := s.repomanager.Briefings(s.db)

	saved, err := repo.Create(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("error saving briefing: %w", err)
	}
	s.logger.Info(ctx, "briefing stored", "id", saved.ID)

	// the client may hang up once the row is stored
	nctx := context.WithoutCancel(ctx)

	if err := s.notifier.Notify(nctx, saved); err != nil {
		s.logger.Warn(ctx, "briefing notification failed", "id", saved.ID, "error", err)
		return saved, nil
	}

	at := s.now()
	if err := repo.MarkNotified(nctx, saved.ID, at); err != nil {
		s.logger.Warn(ctx, "marking briefing notified failed", "id", saved.ID, "error", err)
		return saved, nil
	}
	saved.NotifiedAt = &at

	return saved, nil
}

// Recent lists the newest briefings. limit is clamped to
// [1, MaxRecentLimit]; zero selects DefaultRecentLimit.
func (s *BriefingService) Recent(ctx context.Context, limit int) ([]models.Briefing, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	list, err := s.repomanager.Briefings(s.db).ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing briefings: %w", err)
	}
	return list, nil
}
