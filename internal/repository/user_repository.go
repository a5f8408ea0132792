package repository

import (
	"context"
	"errors"
	"fmt"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, name, email, reward_points, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.RewardPoints, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("user_id", id.String()).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// DeductPoints subtracts points from a user's balance. The WHERE guard makes
// the deduction fail instead of driving the balance negative under
// concurrent orders.
func (r *userRepository) DeductPoints(ctx context.Context, tx pgx.Tx, userID uuid.UUID, points int64) error {
	if points <= 0 {
		return nil
	}

	query := `
		UPDATE users
		SET reward_points = reward_points - $2, updated_at = NOW()
		WHERE id = $1 AND reward_points >= $2
	`

	tag, err := tx.Exec(ctx, query, userID, points)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Int64("points", points).
			Msg("failed to deduct reward points")
		return fmt.Errorf("failed to deduct reward points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInsufficientFunds
	}

	r.logger.Debug().
		Str("user_id", userID.String()).
		Int64("points", points).
		Msg("reward points deducted")

	return nil
}
