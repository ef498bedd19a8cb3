package chi

import (
	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
	"github.com/kailas-cloud/blogdex/internal/domain/tag"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeArticleNotFound  ErrorCode = "article_not_found"
	ErrorCodeRouteNotFound    ErrorCode = "not_found"
	ErrorCodeNotReady         ErrorCode = "not_ready"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Article is the wire form of an article.
type Article struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"cover_image"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	PublishDate string   `json:"publish_date"`
	ReadTime    string   `json:"read_time"`
}

// Tag is the wire form of a tag catalog entry.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ArticleListResponse wraps an unpaginated article list.
type ArticleListResponse struct {
	Items []Article `json:"items"`
}

// ArticleCursorListResponse is one page of the full collection.
type ArticleCursorListResponse struct {
	Items      []Article `json:"items"`
	HasMore    bool      `json:"has_more"`
	NextCursor *int      `json:"next_cursor,omitempty"`
	Total      int       `json:"total"`
}

// TagArticlesResponse lists the articles under one tag.
type TagArticlesResponse struct {
	Tag   string    `json:"tag"`
	Items []Article `json:"items"`
}

// TagListResponse is the tag catalog.
type TagListResponse struct {
	Items []Tag `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func articleToWire(a *domarticle.Article) Article {
	tags := a.Tags()
	if tags == nil {
		tags = []string{}
	}
	return Article{
		ID:          a.ID(),
		Title:       a.Title(),
		Excerpt:     a.Excerpt(),
		Content:     a.Content(),
		CoverImage:  a.CoverImage(),
		Category:    a.Category(),
		Tags:        tags,
		PublishDate: a.PublishDate(),
		ReadTime:    a.ReadTime(),
	}
}

func articlesToWire(articles []domarticle.Article) []Article {
	out := make([]Article, len(articles))
	for i := range articles {
		out[i] = articleToWire(&articles[i])
	}
	return out
}

func tagsToWire(tags []tag.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = Tag{Name: t.Name(), Count: t.Count()}
	}
	return out
}
