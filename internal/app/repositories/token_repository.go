package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushire/campushire/internal/pkg/apperrors"
	"github.com/campushire/campushire/internal/pkg/logger"
)

// TokenRepository handles session token database operations. Each account has
// at most one token row; repeated logins return the existing token.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetOrCreate returns the account's session token, inserting the candidate
// token only if no row exists yet. The no-op DO UPDATE makes the insert return
// the existing row under concurrent logins.
func (r *TokenRepository) GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error) {
	var token string
	err := r.db.QueryRow(ctx, `
		INSERT INTO auth_tokens (token, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET user_id = auth_tokens.user_id
		RETURNING token`,
		candidate, userID, time.Now()).Scan(&token)

	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error upserting session token")
		return "", fmt.Errorf("error creating session token: %w", err)
	}

	return token, nil
}

// GetUserIDByToken resolves a session token to its account ID
func (r *TokenRepository) GetUserIDByToken(ctx context.Context, token string) (int64, error) {
	sql, args, err := r.sb.Select("user_id").
		From("auth_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("failed to build token lookup query: %w", err)
	}

	var userID int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		return 0, fmt.Errorf("error retrieving session token: %w", err)
	}

	return userID, nil
}

// DeleteByUserID removes the account's session token. Missing tokens are not
// an error so logout stays idempotent.
func (r *TokenRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("auth_tokens").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build token delete query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting session token")
		return fmt.Errorf("error deleting session token: %w", err)
	}

	return nil
}
