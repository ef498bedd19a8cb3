package catalog

import (
	"context"

	"github.com/kailas-cloud/blogdex/internal/domain/article"
)

// Source yields the ordered, already-validated article collection once.
type Source interface {
	Load(ctx context.Context) ([]article.Article, error)
}

// Pinger is implemented by sources backed by a remote store.
type Pinger interface {
	Ping(ctx context.Context) error
}
