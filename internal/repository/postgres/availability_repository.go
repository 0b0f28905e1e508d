package postgres

import (
	"context"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gdugdh24/sparring-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type availabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) ListByUser(ctx context.Context, userID string) ([]*domain.AvailabilitySlot, error) {
	slots := []*domain.AvailabilitySlot{}
	query := `
		SELECT id, user_id, day_of_week, start_time, end_time
		FROM availabilities WHERE user_id = $1
		ORDER BY day_of_week, start_time
	`
	err := r.db.SelectContext(ctx, &slots, query, userID)
	return slots, err
}

func (r *availabilityRepository) Create(ctx context.Context, slot *domain.AvailabilitySlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	query := `
		INSERT INTO availabilities (id, user_id, day_of_week, start_time, end_time)
		VALUES (:id, :user_id, :day_of_week, :start_time, :end_time)
	`
	_, err := r.db.NamedExecContext(ctx, query, slot)
	return err
}

func (r *availabilityRepository) DeleteForUser(ctx context.Context, id, userID string) error {
	query := `DELETE FROM availabilities WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}
