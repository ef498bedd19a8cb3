package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/blogdex/internal/domain"
	"github.com/kailas-cloud/blogdex/internal/domain/article"
	"github.com/kailas-cloud/blogdex/internal/domain/tag"
)

func makeArticle(t *testing.T, id int, tags ...string) article.Article {
	t.Helper()
	a, err := article.New(article.Fields{ID: id, Title: fmt.Sprintf("post %d", id), Tags: tags})
	if err != nil {
		t.Fatalf("article.New: %v", err)
	}
	return a
}

func makeIndex(t *testing.T, articles ...article.Article) *Index {
	t.Helper()
	idx, err := NewIndex(articles)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func ids(articles []article.Article) []int {
	out := make([]int, len(articles))
	for i := range articles {
		out[i] = articles[i].ID()
	}
	return out
}

func tagCounts(tags []tag.Tag) map[string]int {
	out := make(map[string]int, len(tags))
	for _, t := range tags {
		out[t.Name()] = t.Count()
	}
	return out
}

// fixture mirrors the shape of the shipped blog data: eleven posts, ids 1..11.
func fixture(t *testing.T) *Index {
	t.Helper()
	return makeIndex(t,
		makeArticle(t, 1, "Windows", "DirectSound", "WASAPI", "Audio", "Testing"),
		makeArticle(t, 2, "Android", "OpenSLES", "AudioRecord", "Testing"),
		makeArticle(t, 3, "Activity", "Fragment", "Android", "Testing"),
		makeArticle(t, 4, "HardwareDecode", "Performance", "Media", "Testing"),
		makeArticle(t, 5, "Logging", "Performance", "Testing"),
		makeArticle(t, 6, "JNI", "Performance", "Android", "Testing"),
		makeArticle(t, 7, "Transcode", "Media", "Testing"),
		makeArticle(t, 8, "Preload", "Performance", "Media", "Testing"),
		makeArticle(t, 9, "Buffer", "Media", "Testing"),
		makeArticle(t, 10, "m3u8", "HLS", "Testing"),
		makeArticle(t, 11, "AudioQueue", "iOS", "Performance", "Testing"),
	)
}

// --- NewIndex ---

func TestNewIndex_DuplicateID(t *testing.T) {
	_, err := NewIndex([]article.Article{
		makeArticle(t, 1, "a"),
		makeArticle(t, 2, "b"),
		makeArticle(t, 1, "c"),
	})
	if !errors.Is(err, domain.ErrDuplicateArticle) {
		t.Fatalf("expected ErrDuplicateArticle, got %v", err)
	}
	var dup *domain.DuplicateArticleError
	if !errors.As(err, &dup) || dup.ID != 1 {
		t.Errorf("expected duplicate id 1, got %v", err)
	}
}

func TestNewIndex_Empty(t *testing.T) {
	idx := makeIndex(t)
	if idx.Len() != 0 {
		t.Errorf("Len = %d, want 0", idx.Len())
	}
	if got := idx.TagCatalog(); len(got) != 0 {
		t.Errorf("empty collection must yield empty catalog, got %v", tagCounts(got))
	}
	if got := idx.RelatedArticles(1, 3); len(got) != 0 {
		t.Errorf("expected no related articles, got %v", ids(got))
	}
}

func TestNewIndex_DoesNotAliasInput(t *testing.T) {
	in := []article.Article{makeArticle(t, 1, "a"), makeArticle(t, 2, "b")}
	idx := makeIndex(t, in...)

	in[0] = makeArticle(t, 99, "z")
	if _, ok := idx.ArticleByID(1); !ok {
		t.Error("index must keep its own copy of the collection")
	}
}

// --- TagCatalog ---

func TestTagCatalog_Accumulates(t *testing.T) {
	idx := makeIndex(t,
		makeArticle(t, 1, "React", "JS"),
		makeArticle(t, 2, "React", "TS"),
	)

	got := tagCounts(idx.TagCatalog())
	want := map[string]int{"React": 2, "JS": 1, "TS": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestTagCatalog_DuplicateWithinArticleCountsOnce(t *testing.T) {
	idx := makeIndex(t,
		makeArticle(t, 1, "Go", "Go", "Go"),
		makeArticle(t, 2, "Go"),
	)
	got := tagCounts(idx.TagCatalog())
	if got["Go"] != 2 {
		t.Errorf("Go count = %d, want 2", got["Go"])
	}
	if len(idx.TagCatalog()) != 1 {
		t.Errorf("expected one catalog entry, got %d", len(idx.TagCatalog()))
	}
}

func TestTagCatalog_FirstSeenOrder(t *testing.T) {
	idx := makeIndex(t,
		makeArticle(t, 1, "B", "A"),
		makeArticle(t, 2, "C", "A"),
	)
	var got []string
	for _, tg := range idx.TagCatalog() {
		got = append(got, tg.Name())
	}
	if diff := cmp.Diff([]string{"B", "A", "C"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTagCatalog_MatchesRecount(t *testing.T) {
	idx := fixture(t)
	all := idx.All()
	for _, tg := range idx.TagCatalog() {
		n := 0
		for i := range all {
			if all[i].HasTag(tg.Name()) {
				n++
			}
		}
		if n != tg.Count() {
			t.Errorf("tag %q: catalog count %d, recount %d", tg.Name(), tg.Count(), n)
		}
	}
}

func TestTagCatalog_ReturnsCopy(t *testing.T) {
	idx := makeIndex(t, makeArticle(t, 1, "A"))
	got := idx.TagCatalog()
	got[0] = tag.New("mutated", 100)
	if idx.TagCatalog()[0].Name() != "A" {
		t.Error("TagCatalog must return a copy")
	}
}

// --- ArticlesByTag ---

func TestArticlesByTag_OrderAndSoundness(t *testing.T) {
	idx := fixture(t)

	got := idx.ArticlesByTag("Android")
	if diff := cmp.Diff([]int{2, 3, 6}, ids(got)); diff != "" {
		t.Errorf("ArticlesByTag(Android) mismatch (-want +got):\n%s", diff)
	}
}

func TestArticlesByTag_CompleteAndSound(t *testing.T) {
	idx := fixture(t)
	for _, tg := range idx.TagCatalog() {
		matched := make(map[int]bool)
		for _, a := range idx.ArticlesByTag(tg.Name()) {
			if !a.HasTag(tg.Name()) {
				t.Errorf("article %d returned for %q but lacks it", a.ID(), tg.Name())
			}
			matched[a.ID()] = true
		}
		all := idx.All()
		for i := range all {
			if all[i].HasTag(tg.Name()) && !matched[all[i].ID()] {
				t.Errorf("article %d carries %q but was not returned", all[i].ID(), tg.Name())
			}
		}
	}
}

func TestArticlesByTag_Unknown(t *testing.T) {
	idx := fixture(t)
	got := idx.ArticlesByTag("NoSuchTag")
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no articles, got %v", ids(got))
	}
}

func TestArticlesByTag_CaseSensitive(t *testing.T) {
	idx := fixture(t)
	if got := idx.ArticlesByTag("android"); len(got) != 0 {
		t.Errorf("tag lookup must be case-sensitive, got %v", ids(got))
	}
}

// --- ArticleByID ---

func TestArticleByID(t *testing.T) {
	idx := fixture(t)

	for id := 1; id <= 11; id++ {
		a, ok := idx.ArticleByID(id)
		if !ok {
			t.Fatalf("ArticleByID(%d): not found", id)
		}
		if a.ID() != id {
			t.Errorf("ArticleByID(%d) returned %d", id, a.ID())
		}
	}

	for _, id := range []int{999, 0, -1} {
		if _, ok := idx.ArticleByID(id); ok {
			t.Errorf("ArticleByID(%d): expected absent", id)
		}
	}
}

// --- RelatedArticles ---

func TestRelatedArticles_SharedTag(t *testing.T) {
	idx := makeIndex(t,
		makeArticle(t, 1, "Windows", "DirectSound"),
		makeArticle(t, 3, "Android", "DirectSound"),
		makeArticle(t, 5, "CSS"),
	)

	got := idx.RelatedArticles(1, 3)
	if diff := cmp.Diff([]int{3}, ids(got)); diff != "" {
		t.Errorf("RelatedArticles(1, 3) mismatch (-want +got):\n%s", diff)
	}
}

func TestRelatedArticles_CollectionOrderNotOverlap(t *testing.T) {
	idx := makeIndex(t,
		makeArticle(t, 1, "A", "B", "C"),
		makeArticle(t, 2, "C"),
		makeArticle(t, 3, "A", "B", "C"),
	)
	got := idx.RelatedArticles(1, 1)
	if diff := cmp.Diff([]int{2}, ids(got)); diff != "" {
		t.Errorf("related must follow collection order, not shared-tag count (-want +got):\n%s", diff)
	}
}

func TestRelatedArticles_Limit(t *testing.T) {
	idx := fixture(t)

	// Every fixture article shares "Testing".
	tests := []struct {
		limit int
		want  []int
	}{
		{3, []int{1, 2, 3}},
		{1, []int{1}},
		{100, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{0, []int{}},
		{-1, []int{}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("limit=%d", tc.limit), func(t *testing.T) {
			got := idx.RelatedArticles(11, tc.limit)
			if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRelatedArticles_Properties(t *testing.T) {
	idx := fixture(t)
	all := idx.All()

	for i := range all {
		ref := all[i]
		for _, limit := range []int{1, 3, 20} {
			got := idx.RelatedArticles(ref.ID(), limit)
			if len(got) > limit || len(got) > idx.Len()-1 {
				t.Errorf("related(%d, %d) returned %d articles", ref.ID(), limit, len(got))
			}
			for j := range got {
				if got[j].ID() == ref.ID() {
					t.Errorf("related(%d) includes the reference", ref.ID())
				}
				if !got[j].SharesTag(&ref) {
					t.Errorf("related(%d) returned %d with no shared tag", ref.ID(), got[j].ID())
				}
			}
		}
	}
}

func TestRelatedArticles_UnknownReference(t *testing.T) {
	idx := fixture(t)
	got := idx.RelatedArticles(999, 3)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestRelatedArticles_UntaggedReference(t *testing.T) {
	idx := makeIndex(t, makeArticle(t, 1), makeArticle(t, 2, "A"))
	if got := idx.RelatedArticles(1, 3); len(got) != 0 {
		t.Errorf("untagged reference relates to nothing, got %v", ids(got))
	}
}

// --- All / Latest ---

func TestLatest(t *testing.T) {
	idx := fixture(t)

	if diff := cmp.Diff([]int{1, 2, 3}, ids(idx.Latest(3))); diff != "" {
		t.Errorf("Latest(3) mismatch (-want +got):\n%s", diff)
	}
	if got := idx.Latest(50); len(got) != 11 {
		t.Errorf("Latest(50) len = %d, want 11", len(got))
	}
	if got := idx.Latest(0); len(got) != 0 {
		t.Errorf("Latest(0) len = %d, want 0", len(got))
	}
}

func TestAll_Order(t *testing.T) {
	idx := makeIndex(t, makeArticle(t, 5), makeArticle(t, 2), makeArticle(t, 9))
	if diff := cmp.Diff([]int{5, 2, 9}, ids(idx.All())); diff != "" {
		t.Errorf("All mismatch (-want +got):\n%s", diff)
	}
}
