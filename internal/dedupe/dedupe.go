// Package dedupe groups parsed bookmarks by normalized URL and by
// title similarity.
package dedupe

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/dmaher/bmorganize/internal/domain"
)

// DefaultSimilarity is the title-similarity threshold. Two titles with
// normalized Levenshtein similarity at or above it cluster together.
const DefaultSimilarity = 0.85

// Groups finds duplicate bookmarks. URL groups are exclusive: every
// record lands in at most one, keyed by its normalized URL. Title
// clusters are advisory, built by a greedy single pass in input order
// so that the same input always yields the same clusters.
//
// Only groups with at least two members are returned.
func Groups(records []domain.Bookmark, similarity float64) []domain.DuplicateGroup {
	if similarity <= 0 || similarity > 1 {
		similarity = DefaultSimilarity
	}

	var out []domain.DuplicateGroup

	// Exact URL duplicates, key order fixed by first appearance.
	byURL := make(map[string][]domain.Bookmark)
	var keyOrder []string
	for _, b := range records {
		k := NormalizeURL(b.URL)
		if _, seen := byURL[k]; !seen {
			keyOrder = append(keyOrder, k)
		}
		byURL[k] = append(byURL[k], b)
	}
	for _, k := range keyOrder {
		if members := byURL[k]; len(members) >= 2 {
			out = append(out, domain.DuplicateGroup{
				Kind:    domain.GroupKindURL,
				Key:     k,
				Members: members,
			})
		}
	}

	out = append(out, titleClusters(records, similarity)...)
	return out
}

// titleClusters greedily seeds a cluster from each unclaimed record and
// pulls in every later unclaimed record whose title is similar enough.
// A cluster spanning only one normalized URL is dropped: that case is
// already an exact duplicate group.
func titleClusters(records []domain.Bookmark, threshold float64) []domain.DuplicateGroup {
	titles := make([]string, len(records))
	for i, b := range records {
		titles[i] = normalizeTitle(b.Title)
	}

	var out []domain.DuplicateGroup
	claimed := make([]bool, len(records))

	for i := range records {
		if claimed[i] || titles[i] == "" {
			continue
		}

		members := []domain.Bookmark{records[i]}
		urls := map[string]struct{}{NormalizeURL(records[i].URL): {}}

		for j := i + 1; j < len(records); j++ {
			if claimed[j] || titles[j] == "" {
				continue
			}
			if Similarity(titles[i], titles[j]) < threshold {
				continue
			}
			claimed[j] = true
			members = append(members, records[j])
			urls[NormalizeURL(records[j].URL)] = struct{}{}
		}

		if len(members) >= 2 && len(urls) >= 2 {
			out = append(out, domain.DuplicateGroup{
				Kind:    domain.GroupKindTitle,
				Key:     titles[i],
				Members: members,
			})
		}
	}

	return out
}

// Similarity is 1 - dist/maxlen over the given strings, in [0, 1].
// Equal strings score 1, disjoint strings approach 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(max)
}

func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
