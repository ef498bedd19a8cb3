package blogdex

import "github.com/kailas-cloud/blogdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidArticle   = domain.ErrInvalidArticle
	ErrDuplicateArticle = domain.ErrDuplicateArticle
	ErrSourceEmpty      = domain.ErrSourceEmpty
)
