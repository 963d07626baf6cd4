package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/shepherd/api/internal/database"
	"github.com/forgo/shepherd/api/internal/model"
)

// TokenRepository handles refresh token data access
type TokenRepository struct {
	db database.Database
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

// CreateRefreshToken stores a new refresh token
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	query := `
		CREATE refresh_token CONTENT {
			user: type::record($user),
			token_hash: $token_hash,
			expires_on: <datetime>$expires_on,
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"user":       recordID("user", token.UserID),
		"token_hash": token.TokenHash,
		"expires_on": token.ExpiresOn.UTC().Format(time.RFC3339),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	token.ID = created.ID
	token.CreatedOn = created.CreatedOn
	return nil
}

// GetRefreshTokenByHash retrieves a refresh token by its hash; nil when unknown
func (r *TokenRepository) GetRefreshTokenByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	query := `SELECT * FROM refresh_token WHERE token_hash = $hash LIMIT 1`
	vars := map[string]interface{}{"hash": hash}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := asRecord(result)
	if err != nil || data == nil {
		return nil, err
	}
	return parseRefreshToken(data), nil
}

// RevokeRefreshToken marks a single token as revoked
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, hash string) error {
	query := `UPDATE refresh_token SET revoked_on = time::now() WHERE token_hash = $hash AND revoked_on IS NONE`
	vars := map[string]interface{}{"hash": hash}

	return r.db.Execute(ctx, query, vars)
}

// RevokeAllUserTokens revokes every live token of a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	query := `UPDATE refresh_token SET revoked_on = time::now() WHERE user = type::record($user) AND revoked_on IS NONE`
	vars := map[string]interface{}{"user": recordID("user", userID)}

	return r.db.Execute(ctx, query, vars)
}

// DeleteExpiredTokens removes tokens past their expiry and returns how many were deleted
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) (int, error) {
	query := `DELETE refresh_token WHERE expires_on < time::now() RETURN BEFORE`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return 0, err
	}
	return len(resultRecords(result)), nil
}

func parseRefreshToken(data map[string]interface{}) *model.RefreshToken {
	return &model.RefreshToken{
		ID:        convertSurrealID(data["id"]),
		UserID:    convertSurrealID(data["user"]),
		TokenHash: getString(data, "token_hash"),
		ExpiresOn: getTimeValue(data, "expires_on"),
		RevokedOn: getTime(data, "revoked_on"),
		CreatedOn: getTimeValue(data, "created_on"),
	}
}
