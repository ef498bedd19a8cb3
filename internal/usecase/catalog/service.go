package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/blogdex/internal/domain"
	"github.com/kailas-cloud/blogdex/internal/domain/article"
	"github.com/kailas-cloud/blogdex/internal/domain/tag"
	"github.com/kailas-cloud/blogdex/internal/metrics"
)

// Service loads the article collection once and serves index lookups.
// Reads return domain.ErrNotReady until Load has fully succeeded.
type Service struct {
	source     Source
	sourceName string
	logger     *zap.Logger

	mu      sync.Mutex // serializes Load
	current atomic.Pointer[Index]
}

// New creates a catalog service over source. sourceName labels logs and metrics.
func New(source Source, sourceName string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, sourceName: sourceName, logger: logger}
}

// Load fetches the collection and publishes the index. It succeeds at most
// once; later calls return domain.ErrAlreadyLoaded. A failed load leaves the
// service unloaded so that it may be retried.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Load() != nil {
		return domain.ErrAlreadyLoaded
	}

	start := time.Now()
	articles, err := s.source.Load(ctx)
	if err != nil {
		s.observeLoad(start, "error")
		return fmt.Errorf("load articles from %s: %w", s.sourceName, err)
	}

	idx, err := NewIndex(articles)
	if err != nil {
		s.observeLoad(start, "error")
		return fmt.Errorf("index articles from %s: %w", s.sourceName, err)
	}

	s.current.Store(idx)
	s.observeLoad(start, "ok")

	metrics.IndexArticles.Set(float64(idx.Len()))
	metrics.IndexTags.Set(float64(len(idx.tags)))

	s.logger.Info("Article index loaded",
		zap.String("source", s.sourceName),
		zap.Int("articles", idx.Len()),
		zap.Int("tags", len(idx.tags)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *Service) observeLoad(start time.Time, status string) {
	metrics.IndexLoadDuration.WithLabelValues(s.sourceName, status).Observe(time.Since(start).Seconds())
}

// Ready reports whether the index has been loaded.
func (s *Service) Ready() bool {
	return s.current.Load() != nil
}

func (s *Service) index() (*Index, error) {
	idx := s.current.Load()
	if idx == nil {
		return nil, domain.ErrNotReady
	}
	return idx, nil
}

// Count returns the number of loaded articles.
func (s *Service) Count() (int, error) {
	idx, err := s.index()
	if err != nil {
		return 0, err
	}
	return idx.Len(), nil
}

// All returns every article in collection order.
func (s *Service) All() ([]article.Article, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	return idx.All(), nil
}

// Latest returns the first n articles in collection order.
func (s *Service) Latest(n int) ([]article.Article, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	return idx.Latest(n), nil
}

// Tags returns the tag catalog in the requested order.
func (s *Service) Tags(order tag.Order) ([]tag.Tag, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	return tag.Sorted(idx.TagCatalog(), order), nil
}

// ArticlesByTag returns articles carrying tag. An unknown tag is an empty result.
func (s *Service) ArticlesByTag(name string) ([]article.Article, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	out := idx.ArticlesByTag(name)
	metrics.ObserveLookup("by_tag", len(out) > 0)
	return out, nil
}

// Article returns the article with id, or domain.ErrNotFound.
func (s *Service) Article(id int) (article.Article, error) {
	idx, err := s.index()
	if err != nil {
		return article.Article{}, err
	}
	a, ok := idx.ArticleByID(id)
	metrics.ObserveLookup("by_id", ok)
	if !ok {
		return article.Article{}, fmt.Errorf("article %d: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

// Related returns up to limit articles sharing a tag with article id.
// An unknown reference is an empty result, not an error.
func (s *Service) Related(id, limit int) ([]article.Article, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	out := idx.RelatedArticles(id, limit)
	metrics.ObserveLookup("related", len(out) > 0)
	return out, nil
}
