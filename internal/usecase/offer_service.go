package usecase

import (
	"log"
	"sort"
	"strings"

	"github.com/offerlens/backend/internal/domain"
)

// fingerprintSeparator joins fingerprint components. Normalization strips
// every non-word rune, so a control character can never appear in one.
const fingerprintSeparator = "\x1f"

// OfferServiceConfig holds configuration for the offer reconciler
type OfferServiceConfig struct {
	// StrictVariantMatch makes a variant-qualified row token ("HDFC
	// Regalia (Visa Signature)") no longer match a plain base selection.
	// Default off: base-name equality matches and the variant becomes an
	// informational annotation.
	StrictVariantMatch bool
	EnableDebugLogging bool
}

// OfferService reconciles offer rows against a selected canonical
// instrument. Matching is exact normKey equality; fuzzy scoring belongs
// to suggestions, never to offer eligibility.
type OfferService struct {
	aliases            domain.ColumnAliasSet
	strictVariantMatch bool
	enableDebugLogging bool
}

// NewOfferService creates an offer service with the configured aliases
func NewOfferService(aliases domain.ColumnAliasSet, config OfferServiceConfig) *OfferService {
	return &OfferService{
		aliases:            aliases,
		strictVariantMatch: config.StrictVariantMatch,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// MatchOffers scans every source table for rows matching the selected
// entry and returns the cross-source deduplicated match list. Tables must
// be passed in source priority order (permanent benefits first, then each
// merchant source in configured order): when two sources republish the
// same offer, the higher-priority source's copy is the one kept.
func (s *OfferService) MatchOffers(selected domain.CanonicalEntry, tables []domain.SourceTable) []domain.MatchWrapper {
	var results []domain.MatchWrapper
	seen := make(map[string]bool)

	for _, table := range tables {
		for _, wrapper := range s.matchTable(selected, table) {
			fp := Fingerprint(wrapper)
			if seen[fp] {
				if s.enableDebugLogging {
					log.Printf("[OFFERS] %s: dropped duplicate of already-seen offer %q", wrapper.Source, wrapper.Title)
				}
				continue
			}
			seen[fp] = true
			results = append(results, wrapper)
		}
	}

	return results
}

// matchTable produces this table's matches in row order
func (s *OfferService) matchTable(selected domain.CanonicalEntry, table domain.SourceTable) []domain.MatchWrapper {
	// Permanent benefits are cardholder-inherent: they apply only when a
	// credit card is selected
	if table.Kind == domain.SourceKindPermanent && selected.Category != domain.CategoryCredit {
		return nil
	}

	var matches []domain.MatchWrapper
	for _, row := range table.Rows {
		token, ok := s.matchRow(selected, table, row)
		if !ok {
			continue
		}
		matches = append(matches, s.wrap(selected, table, row, token))
	}
	return matches
}

// matchRow finds the first row token whose canonical key equals the
// selection. A row matches at most once.
func (s *OfferService) matchRow(selected domain.CanonicalEntry, table domain.SourceTable, row domain.RawRow) (string, bool) {
	for _, token := range s.instrumentTokens(selected.Category, table, row) {
		if s.strictVariantMatch && VariantName(token) != "" {
			continue
		}
		if CanonicalKey(token) == selected.NormKey {
			return token, true
		}
	}
	return "", false
}

// instrumentTokens extracts the raw instrument-name tokens relevant to
// the selected category from one row
func (s *OfferService) instrumentTokens(category domain.Category, table domain.SourceTable, row domain.RawRow) []string {
	if table.Kind == domain.SourceKindPermanent {
		name, ok := FirstField(row, s.aliases.PermanentName)
		if !ok {
			return nil
		}
		return []string{name}
	}

	if cell, ok := FirstField(row, s.aliases.ForCategory(category)); ok {
		return SplitInstrumentList(cell)
	}

	// Debit is the minority case in these tables and frequently lives in
	// an unlabeled or generically labeled column
	if category == domain.CategoryDebit {
		return s.debitFallbackTokens(table, row)
	}

	if s.enableDebugLogging {
		log.Printf("[OFFERS] %s: no %s column resolved, row skipped", table.Name, category)
	}
	return nil
}

// debitFallbackTokens handles rows without a debit-labeled column:
// first a row-level type hint whose value says "debit" (the generic card
// column then holds the names), then any column whose delimited tokens
// literally mention debit.
func (s *OfferService) debitFallbackTokens(table domain.SourceTable, row domain.RawRow) []string {
	if hint, ok := FirstField(row, s.aliases.TypeHint); ok {
		if strings.Contains(Normalize(hint), "debit") {
			if cell, ok := FirstField(row, s.aliases.Credit); ok {
				return SplitInstrumentList(cell)
			}
		}
	}

	for _, col := range sortedColumns(row) {
		tokens := SplitInstrumentList(row[col])
		for _, token := range tokens {
			if strings.Contains(Normalize(token), "debit") {
				return tokens
			}
		}
	}

	if s.enableDebugLogging {
		log.Printf("[OFFERS] %s: debit fallback found nothing, row skipped", table.Name)
	}
	return nil
}

// wrap builds the render-ready match wrapper for a matched row
func (s *OfferService) wrap(selected domain.CanonicalEntry, table domain.SourceTable, row domain.RawRow, token string) domain.MatchWrapper {
	return domain.MatchWrapper{
		Offer:         domain.OfferRow{Source: table.Name, Row: row},
		Source:        table.Name,
		MatchCategory: selected.Category,
		VariantText:   VariantName(token),
		Title:         s.renderField(row, s.aliases.Title, "title", "offer"),
		Description:   s.renderField(row, s.aliases.Description, "description", "terms"),
		Image:         s.renderField(row, s.aliases.Image, "image", "logo"),
		Link:          s.renderField(row, s.aliases.Link, "link", "url"),
		Code:          s.renderField(row, s.aliases.Code, "code"),
	}
}

// renderField resolves a display field by alias list, falling back to a
// substring scan over column names
func (s *OfferService) renderField(row domain.RawRow, aliases []string, keywords ...string) string {
	if value, ok := FirstField(row, aliases); ok {
		return value
	}
	for _, col := range ScanColumnsContaining(row, keywords...) {
		if value := strings.TrimSpace(row[col]); value != "" {
			return value
		}
	}
	return ""
}

// Fingerprint derives the cross-source dedup key for a match: normalized
// title, description, image reference, and link. Two rows from different
// sources with the same fingerprint are the same real-world offer.
func Fingerprint(w domain.MatchWrapper) string {
	return strings.Join([]string{
		Normalize(w.Title),
		Normalize(w.Description),
		Normalize(w.Image),
		Normalize(w.Link),
	}, fingerprintSeparator)
}

// sortedColumns returns the row's column names in deterministic order
func sortedColumns(row domain.RawRow) []string {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
