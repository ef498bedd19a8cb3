package article

import (
	"context"
	_ "embed"
	"fmt"

	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
)

//go:embed seed/articles.yaml
var seedData []byte

// SeedSource serves the collection compiled into the binary.
type SeedSource struct{}

// NewSeedSource creates the built-in source.
func NewSeedSource() *SeedSource { return &SeedSource{} }

// Load decodes the embedded collection.
func (SeedSource) Load(_ context.Context) ([]domarticle.Article, error) {
	var doc collectionDTO
	if err := decodeYAML(seedData, &doc); err != nil {
		return nil, fmt.Errorf("seed data: %w", err)
	}
	articles, err := toDomain(doc.Articles)
	if err != nil {
		return nil, fmt.Errorf("seed data: %w", err)
	}
	return articles, nil
}
