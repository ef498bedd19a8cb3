package article

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/blogdex/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFileSource_YAML(t *testing.T) {
	path := writeFile(t, "articles.yaml", `
articles:
  - id: 7
    title: Profiling
    category: Performance
    tags: [pprof, Go]
    publish_date: "2025-03-01"
    read_time: 8 min
    content: |
      # Profiling
      body
  - id: 2
    title: Intro
`)
	got, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]int{7, 2}, articleIDs(got)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pprof", "Go"}, got[0].Tags()); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if got[0].Content() != "# Profiling\nbody\n" {
		t.Errorf("content = %q", got[0].Content())
	}
	if len(got[1].Tags()) != 0 {
		t.Errorf("expected no tags, got %v", got[1].Tags())
	}
}

func TestFileSource_JSON(t *testing.T) {
	path := writeFile(t, "articles.json",
		`{"articles":[{"id":1,"title":"A","tags":["x"],"cover_image":"c.png","read_time":"1 min"}]}`)
	got, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].CoverImage() != "c.png" || got[0].ReadTime() != "1 min" {
		t.Errorf("unexpected articles: %+v", got)
	}
}

func TestFileSource_EmptyListIsValid(t *testing.T) {
	path := writeFile(t, "articles.yaml", "articles: []\n")
	got, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d", len(got))
	}
}

func TestFileSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown yaml field", "a.yaml", "articles:\n  - id: 1\n    title: A\n    author: me\n", nil},
		{"unknown json field", "a.json", `{"articles":[{"id":1,"title":"A","author":"me"}]}`, nil},
		{"malformed", "a.yaml", "articles: [", nil},
		{"zero id", "a.yaml", "articles:\n  - id: 0\n    title: A\n", domain.ErrInvalidArticle},
		{"empty title", "a.yaml", "articles:\n  - id: 1\n", domain.ErrInvalidArticle},
		{"empty tag", "a.yaml", "articles:\n  - id: 1\n    title: A\n    tags: [\"\"]\n", domain.ErrInvalidArticle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := NewFileSource(path).Load(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFileSource_Missing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")).Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestSeedSource(t *testing.T) {
	got, err := NewSeedSource().Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, articleIDs(got)); diff != "" {
		t.Errorf("seed ids mismatch (-want +got):\n%s", diff)
	}
	for i := range got {
		if !got[i].HasTag("测试开发") {
			t.Errorf("seed article %d missing 测试开发 tag: %v", got[i].ID(), got[i].Tags())
		}
	}
	last := got[len(got)-1]
	if diff := cmp.Diff([]string{"AudioQueue", "iOS", "音频播放", "性能测试", "测试开发"}, last.Tags()); diff != "" {
		t.Errorf("article 11 tags mismatch (-want +got):\n%s", diff)
	}
}
