package article

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/blogdex/internal/db"
	"github.com/kailas-cloud/blogdex/internal/domain"
)

func TestKVSource_Key(t *testing.T) {
	if got := NewKVSource(&mockStore{}, "").Key(); got != "blogdex:articles" {
		t.Errorf("default key = %q", got)
	}
	if got := NewKVSource(&mockStore{}, "blog:").Key(); got != "blog:articles" {
		t.Errorf("custom key = %q", got)
	}
}

func TestKVSource_SaveThenLoad(t *testing.T) {
	stored := map[string][]byte{}
	ms := &mockStore{
		setFn: func(_ context.Context, key string, value []byte) error {
			stored[key] = value
			return nil
		},
		getFn: func(_ context.Context, key string) ([]byte, error) {
			v, ok := stored[key]
			if !ok {
				return nil, db.ErrKeyNotFound
			}
			return v, nil
		},
	}
	src := NewKVSource(ms, "")
	ctx := context.Background()
	want := testArticles(t)

	if err := src.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := stored["blogdex:articles"]; !ok {
		t.Fatal("expected collection under blogdex:articles")
	}

	got, err := src.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(articleIDs(want), articleIDs(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	for i := range want {
		if diff := cmp.Diff(want[i].Fields(), got[i].Fields()); diff != "" {
			t.Errorf("article %d mismatch (-want +got):\n%s", want[i].ID(), diff)
		}
	}
}

func TestKVSource_LoadMissingKey(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, db.ErrKeyNotFound
		},
	}
	_, err := NewKVSource(ms, "").Load(context.Background())
	if !errors.Is(err, domain.ErrSourceEmpty) {
		t.Fatalf("expected ErrSourceEmpty, got %v", err)
	}
}

func TestKVSource_LoadEmptyList(t *testing.T) {
	for _, raw := range []string{"[]", "null"} {
		t.Run(raw, func(t *testing.T) {
			ms := &mockStore{
				getFn: func(_ context.Context, _ string) ([]byte, error) {
					return []byte(raw), nil
				},
			}
			_, err := NewKVSource(ms, "").Load(context.Background())
			if !errors.Is(err, domain.ErrSourceEmpty) {
				t.Fatalf("expected ErrSourceEmpty, got %v", err)
			}
		})
	}
}

func TestKVSource_LoadStoreError(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return nil, errors.New("connection refused")
		},
	}
	_, err := NewKVSource(ms, "").Load(context.Background())
	if err == nil || errors.Is(err, domain.ErrSourceEmpty) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestKVSource_LoadCorrupt(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte("{not json"), nil
		},
	}
	if _, err := NewKVSource(ms, "").Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestKVSource_LoadInvalidRecord(t *testing.T) {
	ms := &mockStore{
		getFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte(`[{"id":1,"title":"ok"},{"id":0,"title":"bad"}]`), nil
		},
	}
	_, err := NewKVSource(ms, "").Load(context.Background())
	if !errors.Is(err, domain.ErrInvalidArticle) {
		t.Fatalf("expected ErrInvalidArticle, got %v", err)
	}
}

func TestKVSource_SaveError(t *testing.T) {
	ms := &mockStore{
		setFn: func(_ context.Context, _ string, _ []byte) error {
			return errors.New("READONLY")
		},
	}
	if err := NewKVSource(ms, "").Save(context.Background(), testArticles(t)); err == nil {
		t.Fatal("expected error on SET failure")
	}
}

func TestKVSource_Ping(t *testing.T) {
	ms := &mockStore{
		pingFn: func(_ context.Context) error { return errors.New("down") },
	}
	if err := NewKVSource(ms, "").Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}
