package article

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/blogdex/internal/domain"
)

// MaxTitleLength is the maximum article title length in bytes.
const MaxTitleLength = 512

// Article is the blog post aggregate (immutable value object).
type Article struct {
	id          int
	title       string
	excerpt     string
	content     string
	coverImage  string
	category    string
	tags        []string
	publishDate string
	readTime    string
}

// Fields carries the raw article attributes for construction.
type Fields struct {
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

// New validates and creates an Article.
// ID must be positive, title non-empty, tags non-empty strings.
// Content and cover image are opaque and never inspected.
func New(f Fields) (Article, error) {
	if f.ID <= 0 {
		return Article{}, fmt.Errorf("article id must be positive, got %d: %w", f.ID, domain.ErrInvalidArticle)
	}
	if f.Title == "" {
		return Article{}, fmt.Errorf("article %d: title is required: %w", f.ID, domain.ErrInvalidArticle)
	}
	if len(f.Title) > MaxTitleLength {
		return Article{}, fmt.Errorf(
			"article %d: title too long (max %d): %w", f.ID, MaxTitleLength, domain.ErrInvalidArticle,
		)
	}
	for i, t := range f.Tags {
		if t == "" {
			return Article{}, fmt.Errorf("article %d: tag %d is empty: %w", f.ID, i, domain.ErrInvalidArticle)
		}
	}

	return Reconstruct(f), nil
}

// Reconstruct creates an Article without validation (storage hydration).
func Reconstruct(f Fields) Article {
	return Article{
		id:          f.ID,
		title:       f.Title,
		excerpt:     f.Excerpt,
		content:     f.Content,
		coverImage:  f.CoverImage,
		category:    f.Category,
		tags:        slices.Clone(f.Tags),
		publishDate: f.PublishDate,
		readTime:    f.ReadTime,
	}
}

// ID returns the article identifier.
func (a *Article) ID() int { return a.id }

// Title returns the article title.
func (a *Article) Title() string { return a.title }

// Excerpt returns the short summary shown in listings.
func (a *Article) Excerpt() string { return a.excerpt }

// Content returns the pre-rendered article body.
func (a *Article) Content() string { return a.content }

// CoverImage returns the cover image URI.
func (a *Article) CoverImage() string { return a.coverImage }

// Category returns the free-text category label.
func (a *Article) Category() string { return a.category }

// Tags returns a copy of the ordered tag labels.
func (a *Article) Tags() []string { return slices.Clone(a.tags) }

// PublishDate returns the display publish date.
func (a *Article) PublishDate() string { return a.publishDate }

// ReadTime returns the display read time.
func (a *Article) ReadTime() string { return a.readTime }

// HasTag reports whether the article carries the tag (exact, case-sensitive).
func (a *Article) HasTag(tag string) bool {
	return slices.Contains(a.tags, tag)
}

// SharesTag reports whether the two articles have at least one tag in common.
func (a *Article) SharesTag(other *Article) bool {
	for _, t := range other.tags {
		if a.HasTag(t) {
			return true
		}
	}
	return false
}

// Fields returns the article attributes (used by repositories for persistence).
func (a *Article) Fields() Fields {
	return Fields{
		ID:          a.id,
		Title:       a.title,
		Excerpt:     a.excerpt,
		Content:     a.content,
		CoverImage:  a.coverImage,
		Category:    a.category,
		Tags:        slices.Clone(a.tags),
		PublishDate: a.publishDate,
		ReadTime:    a.readTime,
	}
}
