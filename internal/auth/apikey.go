// Package auth validates API keys against PostgreSQL and enforces per-key
// rate limits. Raw keys are random, only their SHA-256 digest is stored, and
// each key carries its own requests-per-window allowance.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/tradeops/tradesearch/pkg/errors"
	"github.com/tradeops/tradesearch/pkg/postgres"
)

var ErrExpiredKey = errors.New("api key expired")

// Key is the metadata attached to a validated API key.
type Key struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	RateLimit int        `json:"rate_limit"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Validator checks presented keys against the api_keys table.
type Validator struct {
	db     *postgres.Client
	logger *slog.Logger
}

func NewValidator(db *postgres.Client) *Validator {
	return &Validator{
		db:     db,
		logger: slog.Default().With("component", "apikey-validator"),
	}
}

// Validate resolves a raw key to its metadata. Unknown or inactive keys
// return ErrUnauthorized; expired keys return ErrExpiredKey.
func (v *Validator) Validate(ctx context.Context, rawKey string) (*Key, error) {
	var (
		key       Key
		expiresAt sql.NullTime
	)
	err := v.db.DB.QueryRowContext(ctx,
		`SELECT id, name, rate_limit, created_at, expires_at
		 FROM api_keys
		 WHERE key_hash = $1 AND is_active = true`,
		HashKey(rawKey),
	).Scan(&key.ID, &key.Name, &key.RateLimit, &key.CreatedAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("querying api key: %w", err)
	}
	if expiresAt.Valid {
		if expiresAt.Time.Before(time.Now()) {
			return nil, ErrExpiredKey
		}
		key.ExpiresAt = &expiresAt.Time
	}
	return &key, nil
}

// Create stores a new key and returns the raw value. The raw key is shown
// once and cannot be recovered afterwards.
func (v *Validator) Create(ctx context.Context, name string, rateLimit int, expiresAt *time.Time) (string, error) {
	raw := generateRawKey()
	var expiry sql.NullTime
	if expiresAt != nil {
		expiry = sql.NullTime{Time: *expiresAt, Valid: true}
	}
	_, err := v.db.DB.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, name, rate_limit, expires_at) VALUES ($1, $2, $3, $4)`,
		HashKey(raw), name, rateLimit, expiry,
	)
	if err != nil {
		return "", fmt.Errorf("creating api key: %w", err)
	}
	v.logger.Info("api key created", "name", name, "rate_limit", rateLimit)
	return raw, nil
}

// Revoke deactivates a key.
func (v *Validator) Revoke(ctx context.Context, rawKey string) error {
	result, err := v.db.DB.ExecContext(ctx,
		`UPDATE api_keys SET is_active = false WHERE key_hash = $1`,
		HashKey(rawKey),
	)
	if err != nil {
		return fmt.Errorf("revoking api key: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.ErrUnauthorized
	}
	v.logger.Info("api key revoked")
	return nil
}

// Rotate deactivates a key and issues a replacement carrying the same name,
// rate limit and expiry. Both steps run in one transaction so a failure
// leaves the old key usable.
func (v *Validator) Rotate(ctx context.Context, rawKey string) (string, error) {
	raw := generateRawKey()
	err := v.db.InTx(ctx, func(tx *sql.Tx) error {
		var (
			name      string
			rateLimit int
			expiry    sql.NullTime
		)
		err := tx.QueryRowContext(ctx,
			`SELECT name, rate_limit, expires_at FROM api_keys WHERE key_hash = $1 AND is_active = true`,
			HashKey(rawKey),
		).Scan(&name, &rateLimit, &expiry)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrUnauthorized
		}
		if err != nil {
			return fmt.Errorf("loading api key: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE api_keys SET is_active = false WHERE key_hash = $1`,
			HashKey(rawKey),
		); err != nil {
			return fmt.Errorf("deactivating api key: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO api_keys (key_hash, name, rate_limit, expires_at) VALUES ($1, $2, $3, $4)`,
			HashKey(raw), name, rateLimit, expiry,
		); err != nil {
			return fmt.Errorf("inserting replacement key: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	v.logger.Info("api key rotated")
	return raw, nil
}

// HashKey returns the SHA-256 hex digest of a raw key.
func HashKey(raw string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

func generateRawKey() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
