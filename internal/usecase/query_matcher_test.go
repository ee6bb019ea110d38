package usecase

import (
	"fmt"
	"testing"

	"github.com/offerlens/backend/internal/domain"
)

func registryFrom(rows ...domain.RawRow) *Registry {
	return testBuilder().Build([]domain.SourceTable{
		{Name: "Test", Kind: domain.SourceKindMerchant, Rows: rows},
	})
}

func TestQueryMatcher_Defaults(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})
	if m.minScoreThreshold != 30 {
		t.Errorf("minScoreThreshold = %v, want 30", m.minScoreThreshold)
	}
	if m.maxPerCategory != 50 {
		t.Errorf("maxPerCategory = %v, want 50", m.maxPerCategory)
	}
	if len(m.boostRules) != 1 || m.boostRules[0].Keyword != "select" {
		t.Errorf("boostRules = %+v, want the default select rule", m.boostRules)
	}
}

func TestQueryMatcher_EmptyQueryClears(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})
	registry := registryFrom(domain.RawRow{"Eligible Credit Cards": "HDFC Regalia"})

	for _, q := range []string{"", "   ", "\t"} {
		result := m.Suggest(registry, q)
		if result.Groups != nil || result.NoMatches || result.NoData {
			t.Errorf("Suggest(%q) = %+v, want cleared result", q, result)
		}
	}
}

func TestQueryMatcher_NoData(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})

	result := m.Suggest(testBuilder().Build(nil), "hdfc")
	if !result.NoData {
		t.Error("Suggest on empty registry should set NoData")
	}
	if result.NoMatches {
		t.Error("NoData and NoMatches are distinct states")
	}

	result = m.Suggest(nil, "hdfc")
	if !result.NoData {
		t.Error("Suggest on nil registry should set NoData, never crash")
	}
}

func TestQueryMatcher_SubstringMatchRanksFirst(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})
	registry := registryFrom(domain.RawRow{
		"Eligible Credit Cards": "HDFC Regalia, HDFC Millennia, ICICI Coral",
	})

	result := m.Suggest(registry, "hdfc regal")
	if len(result.Groups) == 0 {
		t.Fatal("no groups returned")
	}
	credit := result.Groups[0]
	if credit.Category != domain.CategoryCredit {
		t.Fatalf("first group = %s, want credit", credit.Category)
	}
	if credit.Entries[0].Display != "HDFC Regalia" {
		t.Errorf("top entry = %q, want HDFC Regalia", credit.Entries[0].Display)
	}
}

func TestQueryMatcher_NoMatchesFlag(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})
	registry := registryFrom(domain.RawRow{"Eligible Credit Cards": "HDFC Regalia"})

	result := m.Suggest(registry, "zzzzqqqq")
	if !result.NoMatches {
		t.Error("expected NoMatches for an unmatchable query")
	}
	if result.Groups != nil {
		t.Errorf("Groups = %v, want none", result.Groups)
	}
}

func TestQueryMatcher_DidYouMean(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})
	registry := registryFrom(domain.RawRow{
		"Eligible Credit Cards": "HDFC Regalia, ICICI Coral",
	})

	// Misspelled beyond the score threshold, but still a close miss
	result := m.Suggest(registry, "hfc regla")
	if !result.NoMatches {
		t.Fatalf("expected NoMatches, got %+v", result)
	}
	found := false
	for _, s := range result.DidYouMean {
		if s == "HDFC Regalia" {
			found = true
		}
	}
	if !found {
		t.Errorf("DidYouMean = %v, want it to contain HDFC Regalia", result.DidYouMean)
	}
}

func TestQueryMatcher_CategoryReordering(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})
	registry := registryFrom(domain.RawRow{
		"Eligible Credit Cards": "Bank One Card",
		"Eligible UPI":          "Bank One UPI",
		"Net Banking":           "Bank One Netbanking",
	})

	t.Run("default order puts credit first", func(t *testing.T) {
		result := m.Suggest(registry, "bank one")
		if result.Groups[0].Category != domain.CategoryCredit {
			t.Errorf("first group = %s, want credit", result.Groups[0].Category)
		}
	})

	t.Run("upi keyword promotes upi", func(t *testing.T) {
		result := m.Suggest(registry, "bank one upi")
		if result.Groups[0].Category != domain.CategoryUPI {
			t.Errorf("first group = %s, want upi", result.Groups[0].Category)
		}
	})

	t.Run("netbanking keyword promotes netbanking", func(t *testing.T) {
		result := m.Suggest(registry, "bank one netbanking")
		if result.Groups[0].Category != domain.CategoryNetBanking {
			t.Errorf("first group = %s, want netbanking", result.Groups[0].Category)
		}
	})
}

func TestQueryMatcher_BoostedSelectTypo(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})
	registry := registryFrom(domain.RawRow{
		"Eligible Credit Cards": "Select Gold Card, Golden Harvest Card",
	})

	// "selct" is below the strict threshold against "Select Gold Card",
	// but within edit distance 2 of the boosted keyword
	result := m.Suggest(registry, "selct gold")
	if len(result.Groups) == 0 {
		t.Fatal("boosted query returned no groups")
	}
	entries := result.Groups[0].Entries
	if entries[0].Display != "Select Gold Card" {
		t.Errorf("top entry = %q, want boosted Select Gold Card first", entries[0].Display)
	}
}

func TestQueryMatcher_CapPerCategory(t *testing.T) {
	rows := make([]domain.RawRow, 60)
	for i := range rows {
		rows[i] = domain.RawRow{
			"Eligible Credit Cards": fmt.Sprintf("HDFC Card %02d", i),
		}
	}
	m := NewQueryMatcher(QueryMatcherConfig{})

	result := m.Suggest(registryFrom(rows...), "hdfc card")
	if len(result.Groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(result.Groups))
	}
	if got := len(result.Groups[0].Entries); got != 50 {
		t.Errorf("entries = %d, want capped at 50", got)
	}
}

func TestQueryMatcher_DeterministicTieBreak(t *testing.T) {
	m := NewQueryMatcher(QueryMatcherConfig{})
	registry := registryFrom(domain.RawRow{
		"Eligible Credit Cards": "Gamma hdfc, Alpha hdfc, Beta hdfc",
	})

	// All three contain the query, all score 100: ordering must fall back
	// to ascending display name
	result := m.Suggest(registry, "hdfc")
	entries := result.Groups[0].Entries
	want := []string{"Alpha HDFC", "Beta HDFC", "Gamma HDFC"}
	for i, w := range want {
		if entries[i].Display != w {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Display, w)
		}
	}
}
