package usecase

import (
	"log"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/offerlens/backend/internal/domain"
)

// BoostRule is one boosted-keyword affordance: when the query contains a
// token within QueryDistance edits of Keyword, candidates with a token
// within CandidateDistance edits of Keyword are included regardless of
// score and moved to the front of their category.
type BoostRule struct {
	Keyword           string
	QueryDistance     int
	CandidateDistance int
}

// DefaultBoostRules covers the common "Select" card-tier typo
// ("selct gold" should still surface "Select Gold Card")
func DefaultBoostRules() []BoostRule {
	return []BoostRule{{Keyword: "select", QueryDistance: 2, CandidateDistance: 1}}
}

// QueryMatcherConfig holds configuration for the query matcher
type QueryMatcherConfig struct {
	MinScoreThreshold  float64
	MaxPerCategory     int
	BoostRules         []BoostRule
	EnableDebugLogging bool
}

// QueryMatcher ranks canonical entries against free-text user input
type QueryMatcher struct {
	minScoreThreshold  float64
	maxPerCategory     int
	boostRules         []BoostRule
	enableDebugLogging bool
}

// NewQueryMatcher creates a query matcher with the given configuration
func NewQueryMatcher(config QueryMatcherConfig) *QueryMatcher {
	threshold := config.MinScoreThreshold
	if threshold <= 0 {
		threshold = 30.0 // Default: 0.3 on the combined [0,1] scale
	}

	maxPer := config.MaxPerCategory
	if maxPer <= 0 {
		maxPer = 50
	}

	rules := config.BoostRules
	if rules == nil {
		rules = DefaultBoostRules()
	}

	return &QueryMatcher{
		minScoreThreshold:  threshold,
		maxPerCategory:     maxPer,
		boostRules:         rules,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

type scoredEntry struct {
	entry   domain.CanonicalEntry
	score   float64
	boosted bool
}

// Suggest runs the similarity scorer over every canonical entry and
// returns grouped, ranked, capped suggestion lists. An empty query clears
// everything; an empty registry is the distinct "no data" state.
func (m *QueryMatcher) Suggest(registry *Registry, query string) domain.SuggestResult {
	if registry == nil || registry.Empty() {
		return domain.SuggestResult{NoData: true}
	}
	if strings.TrimSpace(query) == "" {
		return domain.SuggestResult{}
	}

	activeRules := m.activeBoostRules(query)

	var groups []domain.SuggestionGroup
	total := 0
	for _, category := range m.categoryOrder(query) {
		entries := m.rankCategory(registry, category, query, activeRules)
		if len(entries) == 0 {
			continue
		}
		total += len(entries)
		groups = append(groups, domain.SuggestionGroup{Category: category, Entries: entries})
	}

	if total == 0 {
		if m.enableDebugLogging {
			log.Printf("[MATCH] no instruments matched query %q", query)
		}
		return domain.SuggestResult{
			NoMatches:  true,
			DidYouMean: didYouMean(registry, query),
		}
	}

	return domain.SuggestResult{Groups: groups}
}

// rankCategory filters, sorts, and caps one category's entries.
// Ordering: boosted entries first, then descending score, then ascending
// display name so equal scores stay deterministic.
func (m *QueryMatcher) rankCategory(registry *Registry, category domain.Category, query string, rules []BoostRule) []domain.CanonicalEntry {
	var scored []scoredEntry
	for _, entry := range registry.Entries(category) {
		s := Score(query, entry.Display)
		boosted := false
		for _, rule := range rules {
			if HasTokenWithinDistance(entry.Display, rule.Keyword, rule.CandidateDistance) {
				boosted = true
				break
			}
		}
		if s < substringScore && s <= m.minScoreThreshold && !boosted {
			continue
		}
		scored = append(scored, scoredEntry{entry: entry, score: s, boosted: boosted})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].boosted != scored[j].boosted {
			return scored[i].boosted
		}
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].entry.Display < scored[j].entry.Display
	})

	if len(scored) > m.maxPerCategory {
		scored = scored[:m.maxPerCategory]
	}

	entries := make([]domain.CanonicalEntry, len(scored))
	for i, se := range scored {
		entries[i] = se.entry
	}
	return entries
}

// activeBoostRules returns the rules whose keyword the query plausibly
// contains (within the rule's query-side edit distance)
func (m *QueryMatcher) activeBoostRules(query string) []BoostRule {
	var active []BoostRule
	for _, rule := range m.boostRules {
		if HasTokenWithinDistance(query, rule.Keyword, rule.QueryDistance) {
			active = append(active, rule)
		}
	}
	return active
}

// categoryOrder returns the category display order, promoting a category
// the query names outright ("upi", "net banking")
func (m *QueryMatcher) categoryOrder(query string) []domain.Category {
	q := Normalize(query)
	switch {
	case strings.Contains(q, "upi"):
		return promoteCategory(domain.CategoryUPI)
	case strings.Contains(q, "netbanking") || strings.Contains(q, "net banking"):
		return promoteCategory(domain.CategoryNetBanking)
	}
	return domain.CategoryDisplayOrder
}

func promoteCategory(first domain.Category) []domain.Category {
	order := make([]domain.Category, 0, len(domain.CategoryDisplayOrder))
	order = append(order, first)
	for _, category := range domain.CategoryDisplayOrder {
		if category != first {
			order = append(order, category)
		}
	}
	return order
}

// didYouMean ranks all display names against the query for the no-match
// message, closest first, capped at five
func didYouMean(registry *Registry, query string) []string {
	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(query), registry.Displays())
	sort.Sort(ranks)

	suggestions := make([]string, 0, 5)
	for _, rank := range ranks {
		suggestions = append(suggestions, rank.Target)
		if len(suggestions) == 5 {
			break
		}
	}
	return suggestions
}
