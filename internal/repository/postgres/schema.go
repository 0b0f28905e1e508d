package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
  id VARCHAR(36) PRIMARY KEY,
  email VARCHAR(255) NOT NULL UNIQUE,
  hashed_password VARCHAR(255) NOT NULL,
  is_active BOOLEAN NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profiles (
  id VARCHAR(36) PRIMARY KEY,
  user_id VARCHAR(36) NOT NULL UNIQUE REFERENCES users(id),
  name VARCHAR(100) NOT NULL,
  age INTEGER,
  weight DOUBLE PRECISION,
  height DOUBLE PRECISION,
  sport VARCHAR(100) NOT NULL,
  skill_level INTEGER NOT NULL CHECK (skill_level BETWEEN 1 AND 10),
  experience_years INTEGER,
  goals TEXT,
  training_intensity VARCHAR(50),
  city VARCHAR(100),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_profiles_sport ON profiles (LOWER(sport));

CREATE TABLE IF NOT EXISTS availabilities (
  id VARCHAR(36) PRIMARY KEY,
  user_id VARCHAR(36) NOT NULL REFERENCES users(id),
  day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
  start_time VARCHAR(5) NOT NULL,
  end_time VARCHAR(5) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_availabilities_user ON availabilities (user_id);

CREATE TABLE IF NOT EXISTS matches (
  id VARCHAR(36) PRIMARY KEY,
  user_a_id VARCHAR(36) NOT NULL REFERENCES users(id),
  user_b_id VARCHAR(36) NOT NULL REFERENCES users(id),
  compatibility_score DOUBLE PRECISION,
  ai_reasoning TEXT,
  risks TEXT,
  strengths TEXT,
  status VARCHAR(16) NOT NULL DEFAULT 'pending',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CHECK (user_a_id < user_b_id COLLATE "C")
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_matches_pair ON matches (user_a_id, user_b_id);
`

// Migrate creates the tables if they do not exist. Safe to run repeatedly.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
