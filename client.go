package blogdex

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
	"github.com/kailas-cloud/blogdex/internal/domain/tag"
	"github.com/kailas-cloud/blogdex/internal/source"
	"github.com/kailas-cloud/blogdex/internal/usecase/catalog"
)

// Client answers tag lookups over an article collection loaded once by New.
// It is safe for concurrent use.
type Client struct {
	index  *catalog.Index
	handle *source.Handle
}

// New loads the collection from the configured source and builds the index.
// Without options the built-in sample collection is served.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	WithSeed().apply(cfg)
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if cfg.inMemory {
		articles := make([]domarticle.Article, 0, len(cfg.articles))
		for _, a := range cfg.articles {
			da, err := articleToDomain(a)
			if err != nil {
				return nil, fmt.Errorf("blogdex: %w", err)
			}
			articles = append(articles, da)
		}
		idx, err := catalog.NewIndex(articles)
		if err != nil {
			return nil, fmt.Errorf("blogdex: %w", err)
		}
		return &Client{index: idx}, nil
	}

	h, err := source.Open(ctx, cfg.source, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("blogdex: %w", err)
	}
	articles, err := h.Source.Load(ctx)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("blogdex: load %s: %w", h.Driver, err)
	}
	idx, err := catalog.NewIndex(articles)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("blogdex: %w", err)
	}

	cfg.logger.Debug("blogdex index loaded",
		zap.String("source", h.Driver),
		zap.Int("articles", idx.Len()),
	)
	return &Client{index: idx, handle: h}, nil
}

// Close releases the source connection, if any.
func (c *Client) Close() {
	if c.handle != nil {
		c.handle.Close()
	}
}

// Len returns the number of articles.
func (c *Client) Len() int { return c.index.Len() }

// All returns every article in collection order.
func (c *Client) All() []Article {
	return articlesFromDomain(c.index.All())
}

// Latest returns the first n articles in collection order.
func (c *Client) Latest(n int) []Article {
	return articlesFromDomain(c.index.Latest(n))
}

// Tags returns the tag catalog in first-seen order.
func (c *Client) Tags() []Tag {
	return tagsFromDomain(c.index.TagCatalog())
}

// SortedTags returns the tag catalog in the given order.
func (c *Client) SortedTags(order TagOrder) []Tag {
	return tagsFromDomain(tag.Sorted(c.index.TagCatalog(), order))
}

// ArticlesByTag returns the articles carrying tag, in collection order.
// Matching is exact and case-sensitive; an unknown tag yields an empty slice.
func (c *Client) ArticlesByTag(name string) []Article {
	return articlesFromDomain(c.index.ArticlesByTag(name))
}

// Article returns the article with id, or ErrNotFound.
func (c *Client) Article(id int) (Article, error) {
	a, ok := c.index.ArticleByID(id)
	if !ok {
		return Article{}, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return articleFromDomain(&a), nil
}

// Related returns up to limit other articles sharing at least one tag with
// article id, in collection order. An unknown id or limit <= 0 yields an
// empty slice.
func (c *Client) Related(id, limit int) []Article {
	return articlesFromDomain(c.index.RelatedArticles(id, limit))
}
