package blogdex

import (
	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
	"github.com/kailas-cloud/blogdex/internal/domain/tag"
)

// Article is a blog post.
type Article struct {
	ID          int
	Title       string
	Excerpt     string
	Content     string
	CoverImage  string
	Category    string
	Tags        []string
	PublishDate string
	ReadTime    string
}

// Tag is a tag label with the number of articles carrying it.
type Tag struct {
	Name  string
	Count int
}

// TagOrder selects how Tags sorts the catalog.
type TagOrder = tag.Order

// Tag orders.
const (
	TagOrderCatalog = tag.OrderCatalog
	TagOrderCount   = tag.OrderCount
	TagOrderName    = tag.OrderName
)

func articleFromDomain(a *domarticle.Article) Article {
	return Article{
		ID:          a.ID(),
		Title:       a.Title(),
		Excerpt:     a.Excerpt(),
		Content:     a.Content(),
		CoverImage:  a.CoverImage(),
		Category:    a.Category(),
		Tags:        a.Tags(),
		PublishDate: a.PublishDate(),
		ReadTime:    a.ReadTime(),
	}
}

func articlesFromDomain(articles []domarticle.Article) []Article {
	out := make([]Article, len(articles))
	for i := range articles {
		out[i] = articleFromDomain(&articles[i])
	}
	return out
}

func articleToDomain(a Article) (domarticle.Article, error) {
	return domarticle.New(domarticle.Fields{
		ID:          a.ID,
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		CoverImage:  a.CoverImage,
		Category:    a.Category,
		Tags:        a.Tags,
		PublishDate: a.PublishDate,
		ReadTime:    a.ReadTime,
	})
}

func tagsFromDomain(tags []tag.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = Tag{Name: t.Name(), Count: t.Count()}
	}
	return out
}
