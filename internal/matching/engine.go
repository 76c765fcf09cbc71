package matching

import (
	"slices"
	"sort"
	"strings"

	"callhelper/internal/models"
)

// DefaultLimit is the number of ranked cases returned when callers don't ask
// for a specific count.
const DefaultLimit = 5

const (
	mainWeight  = 2
	extraWeight = 1

	// Keywords at least this many runes long also match any query token
	// that starts with their first prefixRunes runes.
	prefixRunes = 3
)

// ScoredCase is a case paired with its per-query score. It is built fresh on
// every call and never written back to the snapshot.
type ScoredCase struct {
	Case       models.Case
	MatchScore int
	MatchRatio float64
}

// Rank scores every case in snapshot against query and returns at most limit
// cases ordered by score, then match ratio, both descending. Ties keep
// snapshot order. Cases hit by a negative keyword, and cases scoring zero,
// are left out.
func Rank(query string, snapshot []models.Case, limit int) []ScoredCase {
	q := Normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}
	tokens := strings.Fields(q)

	var kept []ScoredCase
	for i := range snapshot {
		c := &snapshot[i]

		if hitsNegative(q, c.NegativeKeywords) {
			continue
		}

		score := mainWeight*countMatches(q, tokens, c.MainKeywords) +
			extraWeight*countMatches(q, tokens, c.ExtraKeywords)
		if score == 0 {
			continue
		}

		kept = append(kept, ScoredCase{
			Case:       cloneCase(c),
			MatchScore: score,
			MatchRatio: matchRatio(score, len(c.MainKeywords)),
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].MatchScore != kept[j].MatchScore {
			return kept[i].MatchScore > kept[j].MatchScore
		}
		return kept[i].MatchRatio > kept[j].MatchRatio
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// hitsNegative reports whether any non-empty negative keyword occurs in q.
func hitsNegative(q string, negatives []string) bool {
	for _, kw := range negatives {
		if kw != "" && strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// countMatches counts the keywords in list that match the query. Duplicate
// entries are counted once each.
func countMatches(q string, tokens []string, list []string) int {
	n := 0
	for _, kw := range list {
		if kw != "" && keywordMatches(q, tokens, kw) {
			n++
		}
	}
	return n
}

// keywordMatches applies the substring rule, then the token rule: a 3-rune
// prefix match for long keywords, exact token equality for short ones.
func keywordMatches(q string, tokens []string, kw string) bool {
	if strings.Contains(q, kw) {
		return true
	}

	runes := []rune(kw)
	if len(runes) >= prefixRunes {
		prefix := string(runes[:prefixRunes])
		for _, tok := range tokens {
			if strings.HasPrefix(tok, prefix) {
				return true
			}
		}
		return false
	}

	for _, tok := range tokens {
		if tok == kw {
			return true
		}
	}
	return false
}

// matchRatio approximates the fraction of main keywords matched as
// (score / 2) / mainCount with integer division on the score. Extra keyword
// points leak into the numerator; ordering depends on this exact formula.
func matchRatio(score, mainCount int) float64 {
	if mainCount == 0 {
		return 0
	}
	matchedMain := score / mainWeight
	return float64(matchedMain) / float64(mainCount)
}

func cloneCase(c *models.Case) models.Case {
	out := *c
	out.MainKeywords = slices.Clone(c.MainKeywords)
	out.ExtraKeywords = slices.Clone(c.ExtraKeywords)
	out.Synonyms = slices.Clone(c.Synonyms)
	out.NegativeKeywords = slices.Clone(c.NegativeKeywords)
	return out
}
