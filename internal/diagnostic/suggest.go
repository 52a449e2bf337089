package diagnostic

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxEditDistance bounds the fallback suggestion search so unrelated
// names are never offered.
const maxEditDistance = 2

// Suggest returns the candidate closest to target, or "" if none is close.
// Subsequence matches ("kik" -> "kick") win over edit-distance matches.
func Suggest(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}

	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	ranks := fuzzy.RankFindFold(target, sorted)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxEditDistance+1
	for _, c := range sorted {
		if d := fuzzy.LevenshteinDistance(target, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// DidYouMean formats a hint for the closest candidate, or "" if there is none.
func DidYouMean(target string, candidates []string, quote func(string) string) string {
	s := Suggest(target, candidates)
	if s == "" {
		return ""
	}
	if quote == nil {
		quote = func(v string) string { return "'" + v + "'" }
	}
	return fmt.Sprintf("did you mean %s?", quote(s))
}
