package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gdugdh24/sparring-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const matchColumns = `id, user_a_id, user_b_id, compatibility_score, ai_reasoning,
	risks, strengths, status, created_at`

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// Ensure user_a_id < user_b_id for the unique pair index
	userAID, userBID := domain.CanonicalPair(match.UserAID, match.UserBID)
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.Status == "" {
		match.Status = domain.MatchStatusPending
	}

	query := `
		INSERT INTO matches (id, user_a_id, user_b_id, compatibility_score, ai_reasoning, risks, strengths, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_a_id, user_b_id) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		match.ID, userAID, userBID, match.CompatibilityScore,
		match.AIReasoning, match.Risks, match.Strengths, match.Status,
	).Scan(&match.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return domain.ErrMatchAlreadyExists
		}
		return err
	}

	match.UserAID = userAID
	match.UserBID = userBID
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	if err := r.db.GetContext(ctx, &match, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error) {
	userAID, userBID := domain.CanonicalPair(user1ID, user2ID)

	var match domain.Match
	query := `SELECT ` + matchColumns + ` FROM matches WHERE user_a_id = $1 AND user_b_id = $2`
	if err := r.db.GetContext(ctx, &match, query, userAID, userBID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetForParticipant(ctx context.Context, id, userID string) (*domain.Match, error) {
	var match domain.Match
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE id = $1 AND (user_a_id = $2 OR user_b_id = $2)
	`
	if err := r.db.GetContext(ctx, &match, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetPendingForUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	matches := []*domain.Match{}
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE (user_a_id = $1 OR user_b_id = $1) AND status = $2
		ORDER BY compatibility_score DESC NULLS LAST, created_at
	`
	err := r.db.SelectContext(ctx, &matches, query, userID, domain.MatchStatusPending)
	return matches, err
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id string, status domain.MatchStatus) (bool, error) {
	query := `UPDATE matches SET status = $1 WHERE id = $2 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, status, id, domain.MatchStatusPending)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
