package briefings

import (
	"context"
	"time"

	"github.com/murillocortez/olhar-autoral/internal/server/models"
)

type Repository interface {
	// Create stores b and fills in its creation time.
	Create(ctx context.Context, b *models.Briefing) (*models.Briefing, error)
	// ListRecent returns up to limit briefings, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Briefing, error)
	// MarkNotified records when the photographer was told about briefing id.
	MarkNotified(ctx context.Context, id string, at time.Time) error
}
