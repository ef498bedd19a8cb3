// Package article implements the article sources of the catalog: files,
// the embedded seed collection, Redis/Valkey and SQLite.
package article

import (
	"fmt"

	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
)

// articleDTO is the persisted shape of one article (files, KV values, seed data).
type articleDTO struct {
	ID          int      `json:"id"           yaml:"id"`
	Title       string   `json:"title"        yaml:"title"`
	Excerpt     string   `json:"excerpt"      yaml:"excerpt"`
	Content     string   `json:"content"      yaml:"content"`
	CoverImage  string   `json:"cover_image"  yaml:"cover_image"`
	Category    string   `json:"category"     yaml:"category"`
	Tags        []string `json:"tags"         yaml:"tags"`
	PublishDate string   `json:"publish_date" yaml:"publish_date"`
	ReadTime    string   `json:"read_time"    yaml:"read_time"`
}

// collectionDTO is the top-level document of file and seed sources.
type collectionDTO struct {
	Articles []articleDTO `json:"articles" yaml:"articles"`
}

func buildDTO(a *domarticle.Article) articleDTO {
	f := a.Fields()
	return articleDTO{
		ID:          f.ID,
		Title:       f.Title,
		Excerpt:     f.Excerpt,
		Content:     f.Content,
		CoverImage:  f.CoverImage,
		Category:    f.Category,
		Tags:        f.Tags,
		PublishDate: f.PublishDate,
		ReadTime:    f.ReadTime,
	}
}

func buildDTOs(articles []domarticle.Article) []articleDTO {
	out := make([]articleDTO, len(articles))
	for i := range articles {
		out[i] = buildDTO(&articles[i])
	}
	return out
}

// toDomain validates every record, keeping collection order.
func toDomain(dtos []articleDTO) ([]domarticle.Article, error) {
	out := make([]domarticle.Article, 0, len(dtos))
	for i, d := range dtos {
		a, err := domarticle.New(domarticle.Fields{
			ID:          d.ID,
			Title:       d.Title,
			Excerpt:     d.Excerpt,
			Content:     d.Content,
			CoverImage:  d.CoverImage,
			Category:    d.Category,
			Tags:        d.Tags,
			PublishDate: d.PublishDate,
			ReadTime:    d.ReadTime,
		})
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}
