package article

import (
	"context"
	"testing"

	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	pingFn func(ctx context.Context) error
	getFn  func(ctx context.Context, key string) ([]byte, error)
	setFn  func(ctx context.Context, key string, value []byte) error
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func testArticles(t *testing.T) []domarticle.Article {
	t.Helper()
	fields := []domarticle.Fields{
		{ID: 3, Title: "Third", Category: "Testing", Tags: []string{"Go", "HTTP"}, ReadTime: "5 min"},
		{ID: 1, Title: "First", Excerpt: "intro", Tags: []string{"Go"}, PublishDate: "2025-01-02"},
		{ID: 2, Title: "Second", Content: "## body\n\ntext", CoverImage: "https://img/2.png"},
	}
	out := make([]domarticle.Article, 0, len(fields))
	for _, f := range fields {
		a, err := domarticle.New(f)
		if err != nil {
			t.Fatalf("build article %d: %v", f.ID, err)
		}
		out = append(out, a)
	}
	return out
}

func articleIDs(articles []domarticle.Article) []int {
	ids := make([]int, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID()
	}
	return ids
}
