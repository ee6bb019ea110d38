package usecase

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/offerlens/backend/internal/domain"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	MinScoreThreshold  float64
	MaxPerCategory     int
	BoostRules         []BoostRule
	StrictVariantMatch bool
	EnableDebugLogging bool
}

// CatalogService owns the loaded source tables and the canonical registry
// and exposes the three user-facing operations: suggest, browse, offers.
// Derived state is fully recomputed on every reload; there is no
// incremental mutation, so readers only ever see a complete snapshot.
type CatalogService struct {
	mu       sync.RWMutex
	tables   []domain.SourceTable
	registry *Registry
	loadErrs map[string]error

	loader  domain.SourceLoader
	builder *RegistryBuilder
	matcher *QueryMatcher
	offers  *OfferService
}

// NewCatalogService creates a catalog service with its collaborators
func NewCatalogService(loader domain.SourceLoader, aliases domain.ColumnAliasSet, config CatalogServiceConfig) *CatalogService {
	return &CatalogService{
		loader:  loader,
		builder: NewRegistryBuilder(aliases, config.EnableDebugLogging),
		matcher: NewQueryMatcher(QueryMatcherConfig{
			MinScoreThreshold:  config.MinScoreThreshold,
			MaxPerCategory:     config.MaxPerCategory,
			BoostRules:         config.BoostRules,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		offers: NewOfferService(aliases, OfferServiceConfig{
			StrictVariantMatch: config.StrictVariantMatch,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
	}
}

// Reload fetches all source tables (concurrently, best-effort per source)
// and rebuilds the registry from scratch. A source that fails to load
// contributes nothing; ErrNoData is returned only when every source
// failed and the registry came out empty.
func (s *CatalogService) Reload(ctx context.Context) error {
	tables, loadErrs := s.loader.LoadAll(ctx)

	for name, err := range loadErrs {
		log.Printf("[SOURCE] %s failed to load: %v", name, err)
	}

	registry := s.builder.Build(tables)

	s.mu.Lock()
	s.tables = tables
	s.registry = registry
	s.loadErrs = loadErrs
	s.mu.Unlock()

	if registry.Empty() {
		return domain.ErrNoData
	}
	return nil
}

// Suggest returns grouped, ranked suggestions for a query keystroke
func (s *CatalogService) Suggest(query string) domain.SuggestResult {
	s.mu.RLock()
	registry := s.registry
	s.mu.RUnlock()

	return s.matcher.Suggest(registry, query)
}

// Instruments returns the full registry grouped by category, for the
// browse/marquee list
func (s *CatalogService) Instruments() []domain.SuggestionGroup {
	s.mu.RLock()
	registry := s.registry
	s.mu.RUnlock()

	if registry == nil {
		return nil
	}
	var groups []domain.SuggestionGroup
	for _, category := range domain.CategoryDisplayOrder {
		entries := registry.Entries(category)
		if len(entries) == 0 {
			continue
		}
		groups = append(groups, domain.SuggestionGroup{Category: category, Entries: entries})
	}
	return groups
}

// Offers reconciles all source tables against a selected instrument.
// The instrument string is re-canonicalized, so both the canonical display
// form and a raw variant-qualified spelling select the same entry.
func (s *CatalogService) Offers(instrument string, category domain.Category) ([]domain.MatchWrapper, error) {
	if strings.TrimSpace(instrument) == "" {
		return nil, domain.ErrInvalidRequest
	}

	s.mu.RLock()
	registry := s.registry
	tables := s.tables
	s.mu.RUnlock()

	if registry == nil || registry.Empty() {
		return nil, domain.ErrNoData
	}

	entry, ok := registry.Lookup(category, CanonicalKey(instrument))
	if !ok {
		return nil, domain.ErrNoMatch
	}

	wrappers := s.offers.MatchOffers(entry, tables)
	if len(wrappers) == 0 {
		return nil, domain.ErrNoOffers
	}
	return wrappers, nil
}

// LoadErrors returns the per-source failures from the last reload
func (s *CatalogService) LoadErrors() map[string]error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErrs
}

// SourceCount returns how many tables are currently loaded
func (s *CatalogService) SourceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}
