// Package rediscache provides a read-through Redis cache in front of a card
// repository. Card catalog data changes only on ingest runs, so search and
// lookup results are safe to cache with a short TTL.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/redjoy12/MTGA-deck-builder/pkg/models"
	"github.com/redjoy12/MTGA-deck-builder/pkg/persistence"
)

const (
	defaultTTL     = 15 * time.Minute
	connectTimeout = 5 * time.Second
)

// CachedCardRepository wraps a card repository with a Redis read-through
// cache on Search, GetByID and ResolveByName. Writes go straight to the
// underlying repository and invalidate the cached entries.
type CachedCardRepository struct {
	inner  persistence.CardRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedCardRepository connects to Redis and wraps the given repository.
func NewCachedCardRepository(ctx context.Context, inner persistence.CardRepository, redisURL string, logger *slog.Logger) (*CachedCardRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.InfoContext(ctx, "Connected to Redis card cache", "addr", opts.Addr)

	return &CachedCardRepository{
		inner:  inner,
		client: client,
		ttl:    defaultTTL,
		logger: logger.With("module", "rediscache"),
	}, nil
}

// Search returns cards matching the filters, serving repeated queries from
// the cache.
func (r *CachedCardRepository) Search(ctx context.Context, filters persistence.CardFilters) ([]*models.Card, error) {
	key, err := searchKey(filters)
	if err != nil {
		return r.inner.Search(ctx, filters)
	}

	var cards []*models.Card
	if r.get(ctx, key, &cards) {
		return cards, nil
	}

	cards, err = r.inner.Search(ctx, filters)
	if err != nil {
		return nil, err
	}

	r.set(ctx, key, cards)

	return cards, nil
}

// GetByID fetches a card by its identifier.
func (r *CachedCardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	key := "cards:id:" + id

	var card models.Card
	if r.get(ctx, key, &card) {
		return &card, nil
	}

	found, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(ctx, key, found)

	return found, nil
}

// ResolveByName fetches a card by exact name, case-insensitively.
func (r *CachedCardRepository) ResolveByName(ctx context.Context, name string) (*models.Card, error) {
	key := nameKey(name)

	var card models.Card
	if r.get(ctx, key, &card) {
		return &card, nil
	}

	found, err := r.inner.ResolveByName(ctx, name)
	if err != nil {
		return nil, err
	}

	r.set(ctx, key, found)

	return found, nil
}

// Save writes the card to the underlying repository and drops any cached
// copies. Search results are left to expire with their TTL.
func (r *CachedCardRepository) Save(ctx context.Context, card *models.Card) error {
	if err := r.inner.Save(ctx, card); err != nil {
		return err
	}

	r.invalidate(ctx, "cards:id:"+card.ID, nameKey(card.Name))

	return nil
}

// Delete removes the card from the underlying repository and the cache.
func (r *CachedCardRepository) Delete(ctx context.Context, id string) error {
	var name string
	if card, err := r.inner.GetByID(ctx, id); err == nil {
		name = card.Name
	}

	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}

	keys := []string{"cards:id:" + id}
	if name != "" {
		keys = append(keys, nameKey(name))
	}

	r.invalidate(ctx, keys...)

	return nil
}

// Close releases the Redis connection.
func (r *CachedCardRepository) Close() error {
	return r.client.Close()
}

func (r *CachedCardRepository) get(ctx context.Context, key string, dest any) bool {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "Card cache read failed", "key", key, "error", err)
		}

		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.WarnContext(ctx, "Card cache entry corrupt", "key", key, "error", err)

		return false
	}

	return true
}

func (r *CachedCardRepository) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "Card cache write failed", "key", key, "error", err)
	}
}

func (r *CachedCardRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.WarnContext(ctx, "Card cache invalidation failed", "error", err)
	}
}

func nameKey(name string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(name)))

	return "cards:name:" + hex.EncodeToString(sum[:8])
}

func searchKey(filters persistence.CardFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)

	return "cards:search:" + hex.EncodeToString(sum[:16]), nil
}
