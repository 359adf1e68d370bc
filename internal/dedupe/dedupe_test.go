package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaher/bmorganize/internal/domain"
)

func bm(title, url string) domain.Bookmark {
	return domain.Bookmark{Title: title, URL: url}
}

func TestGroups_TrailingSlashDuplicates(t *testing.T) {
	records := []domain.Bookmark{
		bm("X home", "http://x.com/"),
		bm("X homepage", "http://x.com"),
	}

	groups := Groups(records, DefaultSimilarity)

	require.Len(t, groups, 1)
	assert.Equal(t, domain.GroupKindURL, groups[0].Kind)
	assert.Equal(t, "http://x.com/", groups[0].Key)
	assert.Len(t, groups[0].Members, 2)
}

func TestGroups_ExactURLGroupsAreExclusive(t *testing.T) {
	records := []domain.Bookmark{
		bm("A", "https://a.example/page"),
		bm("B", "https://b.example/page"),
		bm("A again", "https://a.example/page#frag"),
		bm("C", "https://c.example/"),
	}

	groups := Groups(records, DefaultSimilarity)

	var urlGroups []domain.DuplicateGroup
	for _, g := range groups {
		if g.Kind == domain.GroupKindURL {
			urlGroups = append(urlGroups, g)
		}
	}

	require.Len(t, urlGroups, 1)
	assert.Equal(t, "https://a.example/page", urlGroups[0].Key)

	// Every record appears in at most one exact-URL group.
	seen := map[string]int{}
	for _, g := range urlGroups {
		for _, m := range g.Members {
			seen[m.Title]++
		}
	}
	for title, n := range seen {
		assert.Equal(t, 1, n, "record %q in %d url groups", title, n)
	}
}

func TestGroups_SimilarTitlesAcrossURLs(t *testing.T) {
	records := []domain.Bookmark{
		bm("Go Documentation", "https://go.dev/doc"),
		bm("Go documentation", "https://golang.org/doc"),
		bm("Completely different", "https://example.com/"),
	}

	groups := Groups(records, DefaultSimilarity)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, domain.GroupKindTitle, g.Kind)
	assert.Equal(t, "go documentation", g.Key)
	assert.Len(t, g.Members, 2)
}

func TestGroups_SameURLTitleClusterSuppressed(t *testing.T) {
	// Identical titles over a single URL are already an exact duplicate
	// group; no advisory title cluster should double-report them.
	records := []domain.Bookmark{
		bm("Same thing", "https://example.com/a"),
		bm("Same thing", "https://example.com/a"),
	}

	groups := Groups(records, DefaultSimilarity)

	require.Len(t, groups, 1)
	assert.Equal(t, domain.GroupKindURL, groups[0].Kind)
}

func TestGroups_ThresholdRespected(t *testing.T) {
	records := []domain.Bookmark{
		bm("kubernetes", "https://a.example/"),
		bm("kubernetas", "https://b.example/"),
	}

	// One edit over a 10-rune title: similarity 0.9.
	assert.Empty(t, Groups(records, 0.95))
	assert.Len(t, Groups(records, 0.9), 1)
}

func TestGroups_Deterministic(t *testing.T) {
	records := []domain.Bookmark{
		bm("Go Documentation", "https://go.dev/doc"),
		bm("Go documentation", "https://golang.org/doc"),
		bm("Go docs", "https://go.dev/doc/"),
		bm("News", "https://news.example/"),
	}

	first := Groups(records, DefaultSimilarity)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Groups(records, DefaultSimilarity))
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"same", "same", 1},
		{"abcd", "abcx", 0.75},
		{"abcd", "wxyz", 0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
