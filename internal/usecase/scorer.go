package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Scoring weights: containment always wins outright; otherwise token
// overlap dominates with edit similarity as a smoother.
const (
	substringScore     = 100.0
	tokenOverlapWeight = 0.7
	editSimWeight      = 0.3
)

// Score computes a fuzzy match score in [0, 100] between a user query and
// a candidate display name. A normalized-substring hit returns 100 so
// exact/prefix/substring matches always outrank fuzzy ones. Otherwise the
// score combines the fraction of query tokens appearing inside some
// candidate token with Levenshtein similarity over the whole strings.
func Score(query, candidate string) float64 {
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return 0
	}

	if strings.Contains(c, q) {
		return substringScore
	}

	queryTokens := strings.Fields(q)
	candidateTokens := strings.Fields(c)

	matched := 0
	for _, qt := range queryTokens {
		for _, ct := range candidateTokens {
			if strings.Contains(ct, qt) {
				matched++
				break
			}
		}
	}
	overlap := float64(matched) / float64(len(queryTokens))

	maxLen := utf8.RuneCountInString(q)
	if n := utf8.RuneCountInString(c); n > maxLen {
		maxLen = n
	}
	editSim := 1 - float64(levenshtein.ComputeDistance(q, c))/float64(maxLen)
	if editSim < 0 {
		editSim = 0
	}

	return (tokenOverlapWeight*overlap + editSimWeight*editSim) * 100
}

// HasTokenWithinDistance reports whether any whitespace token of the
// normalized text is within the given edit distance of the keyword.
// Backs the boosted-keyword affordance (users mistyping card tier names
// like "Select").
func HasTokenWithinDistance(text, keyword string, maxDistance int) bool {
	keyword = Normalize(keyword)
	if keyword == "" {
		return false
	}
	for _, token := range strings.Fields(Normalize(text)) {
		if levenshtein.ComputeDistance(token, keyword) <= maxDistance {
			return true
		}
	}
	return false
}
