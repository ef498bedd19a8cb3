package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/blogdex/internal/db"
	"github.com/kailas-cloud/blogdex/internal/domain"
	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
)

// DefaultKeyPrefix namespaces blogdex keys in a shared Redis/Valkey.
const DefaultKeyPrefix = "blogdex:"

// kvStore is the consumer interface for the KV source (ISP).
type kvStore interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// KVSource keeps the whole ordered collection as one JSON array under a
// single key, so that a write replaces it atomically.
type KVSource struct {
	store  kvStore
	prefix string
}

// NewKVSource creates a Redis/Valkey source. An empty prefix uses DefaultKeyPrefix.
func NewKVSource(s kvStore, prefix string) *KVSource {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &KVSource{store: s, prefix: prefix}
}

// Key returns the key holding the collection.
func (s *KVSource) Key() string { return s.prefix + "articles" }

// Ping checks the backing store.
func (s *KVSource) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("kv source: %w", err)
	}
	return nil
}

// Load reads the collection. A missing key or an empty stored list is
// domain.ErrSourceEmpty, matching the sqlite source.
func (s *KVSource) Load(ctx context.Context) ([]domarticle.Article, error) {
	key := s.Key()
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("key %s: %w", key, domain.ErrSourceEmpty)
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var dtos []articleDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if len(dtos) == 0 {
		return nil, fmt.Errorf("key %s: %w", key, domain.ErrSourceEmpty)
	}
	articles, err := toDomain(dtos)
	if err != nil {
		return nil, fmt.Errorf("key %s: %w", key, err)
	}
	return articles, nil
}

// Save replaces the stored collection.
func (s *KVSource) Save(ctx context.Context, articles []domarticle.Article) error {
	data, err := json.Marshal(buildDTOs(articles))
	if err != nil {
		return fmt.Errorf("marshal articles: %w", err)
	}
	key := s.Key()
	if err := s.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
