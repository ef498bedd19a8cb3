package catalog

import (
	"fmt"

	"github.com/kailas-cloud/blogdex/internal/domain"
	"github.com/kailas-cloud/blogdex/internal/domain/article"
	"github.com/kailas-cloud/blogdex/internal/domain/tag"
)

// DefaultRelatedLimit is the number of related articles shown under a post.
const DefaultRelatedLimit = 3

// Index is an immutable view over an ordered article collection.
// All derived views are computed from the collection handed to NewIndex;
// nothing mutates after construction, so concurrent reads are safe.
type Index struct {
	articles []article.Article
	byID     map[int]int // id -> position in articles
	tags     []tag.Tag
}

// NewIndex builds an index over articles, keeping their order.
// Fails with domain.ErrDuplicateArticle when two articles share an id.
func NewIndex(articles []article.Article) (*Index, error) {
	idx := &Index{
		articles: make([]article.Article, len(articles)),
		byID:     make(map[int]int, len(articles)),
	}
	copy(idx.articles, articles)

	for i := range idx.articles {
		id := idx.articles[i].ID()
		if _, dup := idx.byID[id]; dup {
			return nil, fmt.Errorf("build index: %w", domain.NewDuplicateArticle(id))
		}
		idx.byID[id] = i
	}

	idx.tags = tally(idx.articles)
	return idx, nil
}

// tally folds the collection into per-tag article counts.
// A tag repeated inside one article counts once for that article.
func tally(articles []article.Article) []tag.Tag {
	counts := make(map[string]int)
	var order []string

	for i := range articles {
		seen := make(map[string]struct{})
		for _, name := range articles[i].Tags() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			if _, ok := counts[name]; !ok {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	out := make([]tag.Tag, len(order))
	for i, name := range order {
		out[i] = tag.New(name, counts[name])
	}
	return out
}

// Len returns the number of indexed articles.
func (x *Index) Len() int { return len(x.articles) }

// All returns every article in collection order.
func (x *Index) All() []article.Article {
	out := make([]article.Article, len(x.articles))
	copy(out, x.articles)
	return out
}

// Latest returns the first n articles in collection order.
func (x *Index) Latest(n int) []article.Article {
	if n <= 0 {
		return []article.Article{}
	}
	n = min(n, len(x.articles))
	out := make([]article.Article, n)
	copy(out, x.articles[:n])
	return out
}

// TagCatalog returns one entry per distinct tag. Entries follow first-seen
// order, but callers should sort for display rather than rely on it.
func (x *Index) TagCatalog() []tag.Tag {
	out := make([]tag.Tag, len(x.tags))
	copy(out, x.tags)
	return out
}

// ArticlesByTag returns every article carrying tag (exact match), in
// collection order. An unknown tag yields an empty slice.
func (x *Index) ArticlesByTag(name string) []article.Article {
	out := []article.Article{}
	for i := range x.articles {
		if x.articles[i].HasTag(name) {
			out = append(out, x.articles[i])
		}
	}
	return out
}

// ArticleByID returns the article with the given id, or false when absent.
func (x *Index) ArticleByID(id int) (article.Article, bool) {
	pos, ok := x.byID[id]
	if !ok {
		return article.Article{}, false
	}
	return x.articles[pos], true
}

// RelatedArticles returns up to limit articles sharing at least one tag with
// the reference article, in collection order and never including the
// reference. An unknown reference or non-positive limit yields an empty slice.
func (x *Index) RelatedArticles(id, limit int) []article.Article {
	out := []article.Article{}
	if limit <= 0 {
		return out
	}
	ref, ok := x.ArticleByID(id)
	if !ok {
		return out
	}

	for i := range x.articles {
		if len(out) == limit {
			break
		}
		candidate := &x.articles[i]
		if candidate.ID() == id {
			continue
		}
		if candidate.SharesTag(&ref) {
			out = append(out, *candidate)
		}
	}
	return out
}
