package briefings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/murillocortez/olhar-autoral/internal/common"
	"github.com/murillocortez/olhar-autoral/internal/dbx"
	"github.com/murillocortez/olhar-autoral/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Briefing) (*models.Briefing, error) {
	query :=
		`INSERT INTO briefings (id, name, profession, email, phone, goal, creative_description, desired_perception, reference_links)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		b.ID, b.Name, b.Profession, b.Email, b.Phone, b.Goal,
		b.CreativeDescription, b.DesiredPerception, b.References,
	).Scan(&b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]models.Briefing, error) {
	query :=
		`SELECT id, name, profession, email, phone, goal, creative_description, desired_perception, reference_links, created_at, notified_at
		 FROM briefings
		 ORDER BY created_at DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Briefing
	for rows.Next() {
		var (
			b          models.Briefing
			notifiedAt sql.NullTime
		)
		err := rows.Scan(&b.ID, &b.Name, &b.Profession, &b.Email, &b.Phone, &b.Goal,
			&b.CreativeDescription, &b.DesiredPerception, &b.References, &b.CreatedAt, &notifiedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if notifiedAt.Valid {
			t := notifiedAt.Time
			b.NotifiedAt = &t
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) MarkNotified(ctx context.Context, id string, at time.Time) error {
	query :=
		`UPDATE briefings SET notified_at = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
