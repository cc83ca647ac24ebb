package user

import (
	"context"
	"fmt"
	"time"

	"chatbot-svc/src/internal/cache"
	"chatbot-svc/src/internal/config"
)

// cachedRepository serves FindByID hits from the cache. Users have no update
// or delete path, so a cached row never goes stale.
type cachedRepository struct {
	next         Repository
	cacheService cache.Service
	keyPrefix    string
	ttl          time.Duration
}

func NewCachedRepository(next Repository, cacheService cache.Service, cfg *config.CacheConfig) Repository {
	return &cachedRepository{
		next:         next,
		cacheService: cacheService,
		keyPrefix:    cfg.UserKeyPrefix,
		ttl:          time.Duration(cfg.UserExpirationMinutes) * time.Minute,
	}
}

func (r *cachedRepository) key(userID string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, userID)
}

func (r *cachedRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	var cached User
	hit, err := r.cacheService.Get(ctx, r.key(userID), &cached)
	switch {
	case err != nil:
		// Drop an unreadable entry so the next lookup repopulates it.
		_ = r.cacheService.Delete(ctx, r.key(userID))
	case hit:
		return &cached, nil
	}

	user, err := r.next.FindByID(ctx, userID)
	if err != nil || user == nil {
		return user, err
	}

	_ = r.cacheService.Set(ctx, r.key(userID), user, r.ttl)
	return user, nil
}

// Insert is not cached: the surrounding transaction may still roll back.
func (r *cachedRepository) Insert(ctx context.Context, user *User) (*User, error) {
	return r.next.Insert(ctx, user)
}
