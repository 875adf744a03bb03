package match

import (
	"sort"
	"strings"

	"github.com/agenthands/reelmatch/internal/core/model"
)

// Normalize canonicalizes a movie title for cross-store comparison:
// lowercase, leading/trailing whitespace trimmed, internal runs of
// whitespace collapsed to a single space. Idempotent.
func Normalize(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// Match groups document-store movies and graph-store movie nodes by
// normalized title. Keys present on only one side yield a MatchResult with
// an empty counterpart; callers computing "present in both stores" filter on
// both sides being non-empty. Results are ordered by key.
func Match(movies []model.Movie, nodes []model.MovieNode) []model.MatchResult {
	byKey := make(map[string]*model.MatchResult)

	group := func(key string) *model.MatchResult {
		r, ok := byKey[key]
		if !ok {
			r = &model.MatchResult{Key: key}
			byKey[key] = r
		}
		return r
	}

	for _, m := range movies {
		r := group(Normalize(m.Title))
		r.Movies = append(r.Movies, m)
	}
	for _, n := range nodes {
		r := group(Normalize(n.Title))
		r.Nodes = append(r.Nodes, n)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]model.MatchResult, 0, len(keys))
	for _, k := range keys {
		results = append(results, *byKey[k])
	}
	return results
}
