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

const profileColumns = `id, user_id, name, age, weight, height, sport, skill_level,
	experience_years, goals, training_intensity, city, created_at, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	query := `
		INSERT INTO profiles (
			id, user_id, name, age, weight, height, sport, skill_level,
			experience_years, goals, training_intensity, city
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.UserID, profile.Name, profile.Age, profile.Weight, profile.Height,
		profile.Sport, profile.SkillLevel, profile.ExperienceYears, profile.Goals,
		profile.TrainingIntensity, profile.City,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrProfileAlreadyExists
	}
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, age = $2, weight = $3, height = $4, sport = $5, skill_level = $6,
		    experience_years = $7, goals = $8, training_intensity = $9, city = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Name, profile.Age, profile.Weight, profile.Height, profile.Sport,
		profile.SkillLevel, profile.ExperienceYears, profile.Goals,
		profile.TrainingIntensity, profile.City,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) FindBySport(ctx context.Context, sport, excludeUserID string) ([]*domain.Profile, error) {
	profiles := []*domain.Profile{}
	query := `
		SELECT ` + profileColumns + ` FROM profiles
		WHERE LOWER(sport) = LOWER($1) AND user_id <> $2
		ORDER BY created_at, id
	`
	err := r.db.SelectContext(ctx, &profiles, query, sport, excludeUserID)
	return profiles, err
}
