// Package notify tells the photographer about new briefings. Every channel is
// best effort: callers log a failure and move on.
package notify

import (
	"context"
	"errors"

	"github.com/murillocortez/olhar-autoral/internal/server/models"
)

// Notifier announces one stored briefing.
type Notifier interface {
	Notify(ctx context.Context, b *models.Briefing) error
}

// Multi fans a briefing out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, b *models.Briefing) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop is used when no channel is configured.
type Nop struct{}

func (Nop) Notify(context.Context, *models.Briefing) error { return nil }
