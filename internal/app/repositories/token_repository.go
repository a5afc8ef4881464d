package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edupoint/sis-backend/internal/db"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/dberrors"
)

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken stores a new refresh token for a user.
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	querySql, args, err := r.sb.Insert("refresh_tokens").
		Columns("user_id", "token", "expires_at").
		Values(userID, token, expiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	_, err = r.db.Exec(ctx, querySql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("error creating token: %w", err)
	}

	return nil
}

// GetUserIDByToken resolves a refresh token to its user, rejecting revoked
// and expired tokens.
func (r *TokenRepository) GetUserIDByToken(ctx context.Context, token string) (int64, error) {
	querySql, args, err := r.sb.Select("user_id", "expires_at", "revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get token query: %w", err)
	}

	var userID int64
	var expiresAt time.Time
	var revoked bool
	err = r.db.QueryRow(ctx, querySql, args...).Scan(&userID, &expiresAt, &revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		return 0, fmt.Errorf("error retrieving token: %w", err)
	}

	if revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if expiresAt.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}

	return userID, nil
}

// Rotate revokes a used refresh token and stores its replacement in one
// transaction. Refresh tokens are single-use; either the old token is
// retired and the new one recorded, or neither happens.
func (r *TokenRepository) Rotate(ctx context.Context, oldToken, newToken string, userID int64, expiresAt time.Time) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		revokeSql, revokeArgs, err := r.sb.Update("refresh_tokens").
			Set("revoked", true).
			Where(squirrel.Eq{"token": oldToken, "revoked": false}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build revoke token query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, revokeSql, revokeArgs...)
		if err != nil {
			return fmt.Errorf("error revoking token: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrTokenNotFound
		}

		insertSql, insertArgs, err := r.sb.Insert("refresh_tokens").
			Columns("user_id", "token", "expires_at").
			Values(userID, newToken, expiresAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create token query: %w", err)
		}

		if _, err := tx.Exec(ctx, insertSql, insertArgs...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
				return apperrors.ErrTokenInvalid
			}
			return fmt.Errorf("error creating token: %w", err)
		}

		return nil
	})
}

// RevokeUserTokens revokes every refresh token a user holds. Used on logout
// and when an account is deactivated.
func (r *TokenRepository) RevokeUserTokens(ctx context.Context, userID int64) error {
	querySql, args, err := r.sb.Update("refresh_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"user_id": userID, "revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke user tokens query: %w", err)
	}

	_, err = r.db.Exec(ctx, querySql, args...)
	if err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

// DeleteExpiredTokens removes rows whose expiry has passed.
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
