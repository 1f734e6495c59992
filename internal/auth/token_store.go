package auth

import (
	"context"
	"time"

	"razzrel/internal/cache"
)

const revokedTokenKeyPrefix = "revoked:token:"

// TokenStoreInterface defines revocation lookups used by the guard and logout.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// TokenStore keeps revoked token IDs in Redis until the token would expire anyway.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke blacklists tokenID for ttl. Expired or zero TTLs are not stored.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether tokenID was revoked. Redis failures read as not revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	data, _ := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	return data != nil
}
