package usecase

import (
	"log"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/offerlens/backend/internal/domain"
)

// harvestKeywords are the column keywords tried in the secondary harvest
// pass when a category's dedicated alias list resolves nothing in a table
var harvestKeywords = map[domain.Category][]string{
	domain.CategoryUPI:        {"upi"},
	domain.CategoryNetBanking: {"netbank", "net bank"},
}

// Registry is the deduplicated, sorted canonical instrument namespace
// built from all loaded source tables. Immutable once built; rebuilt from
// scratch whenever sources reload.
type Registry struct {
	entries map[domain.Category][]domain.CanonicalEntry
	byKey   map[domain.Category]map[string]domain.CanonicalEntry
}

// Entries returns a category's canonical entries in display sort order
func (r *Registry) Entries(category domain.Category) []domain.CanonicalEntry {
	return r.entries[category]
}

// Lookup finds a canonical entry by category and normKey
func (r *Registry) Lookup(category domain.Category, normKey string) (domain.CanonicalEntry, bool) {
	entry, ok := r.byKey[category][normKey]
	return entry, ok
}

// Empty reports whether no category has any entry (the "no data" state,
// distinct from a query matching nothing)
func (r *Registry) Empty() bool {
	for _, entries := range r.entries {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// Displays returns every display name across all categories, used for
// "did you mean" ranking
func (r *Registry) Displays() []string {
	var displays []string
	for _, category := range domain.CategoryDisplayOrder {
		for _, entry := range r.entries[category] {
			displays = append(displays, entry.Display)
		}
	}
	return displays
}

// RegistryBuilder aggregates raw name tokens harvested from all source
// tables into per-category canonical registries
type RegistryBuilder struct {
	aliases            domain.ColumnAliasSet
	collator           *collate.Collator
	enableDebugLogging bool
}

// NewRegistryBuilder creates a builder using the configured column aliases
func NewRegistryBuilder(aliases domain.ColumnAliasSet, enableDebugLogging bool) *RegistryBuilder {
	return &RegistryBuilder{
		aliases:            aliases,
		collator:           collate.New(language.English, collate.IgnoreCase),
		enableDebugLogging: enableDebugLogging,
	}
}

// Build constructs the registry from the given tables. Tables are
// processed in the given order; within one category the first-seen display
// spelling for a normKey wins, so membership is order-independent but
// canonical spelling follows source priority.
func (b *RegistryBuilder) Build(tables []domain.SourceTable) *Registry {
	registry := &Registry{
		entries: make(map[domain.Category][]domain.CanonicalEntry),
		byKey:   make(map[domain.Category]map[string]domain.CanonicalEntry),
	}
	for _, category := range domain.CategoryDisplayOrder {
		registry.byKey[category] = make(map[string]domain.CanonicalEntry)
	}

	for _, table := range tables {
		if table.Kind == domain.SourceKindPermanent {
			b.harvestPermanent(registry, table)
			continue
		}
		for _, category := range domain.CategoryDisplayOrder {
			b.harvestCategory(registry, table, category)
		}
	}

	for category, byKey := range registry.byKey {
		entries := make([]domain.CanonicalEntry, 0, len(byKey))
		for _, entry := range byKey {
			entries = append(entries, entry)
		}
		b.collator.Sort(sortableEntries(entries))
		registry.entries[category] = entries
	}

	return registry
}

// harvestCategory pulls instrument tokens for one category out of one
// merchant table, with a keyword-scan fallback pass for upi/netbanking
// when the alias list resolves nothing anywhere in the table.
func (b *RegistryBuilder) harvestCategory(registry *Registry, table domain.SourceTable, category domain.Category) {
	aliases := b.aliases.ForCategory(category)
	resolvedAny := false

	for _, row := range table.Rows {
		cell, ok := FirstField(row, aliases)
		if !ok {
			continue
		}
		resolvedAny = true
		for _, token := range SplitInstrumentList(cell) {
			b.insert(registry, category, token)
		}
	}

	if resolvedAny {
		return
	}
	keywords, hasFallback := harvestKeywords[category]
	if !hasFallback {
		if b.enableDebugLogging {
			log.Printf("[REGISTRY] %s: no %s column resolved in any row", table.Name, category)
		}
		return
	}
	for _, row := range table.Rows {
		for _, col := range ScanColumnsContaining(row, keywords...) {
			for _, token := range SplitInstrumentList(row[col]) {
				b.insert(registry, category, token)
			}
		}
	}
}

// harvestPermanent reads the permanent-benefits table: one instrument per
// row in a dedicated name column, not a delimited list, always credit.
func (b *RegistryBuilder) harvestPermanent(registry *Registry, table domain.SourceTable) {
	for _, row := range table.Rows {
		name, ok := FirstField(row, b.aliases.PermanentName)
		if !ok {
			if b.enableDebugLogging {
				log.Printf("[REGISTRY] %s: permanent row without a name column", table.Name)
			}
			continue
		}
		b.insert(registry, domain.CategoryCredit, name)
	}
}

// insert adds one raw token to a category, first occurrence winning
func (b *RegistryBuilder) insert(registry *Registry, category domain.Category, token string) {
	display := CanonicalizeBrands(BaseName(token))
	normKey := Normalize(display)
	if normKey == "" {
		return
	}
	if _, exists := registry.byKey[category][normKey]; exists {
		return
	}
	registry.byKey[category][normKey] = domain.CanonicalEntry{
		Category: category,
		Display:  display,
		NormKey:  normKey,
	}
}

// sortableEntries adapts a CanonicalEntry slice to collate.Lister
type sortableEntries []domain.CanonicalEntry

func (s sortableEntries) Len() int           { return len(s) }
func (s sortableEntries) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s sortableEntries) Bytes(i int) []byte { return []byte(s[i].Display) }
