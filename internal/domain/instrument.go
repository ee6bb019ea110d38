package domain

// Category identifies one of the four payment-instrument namespaces
type Category string

const (
	CategoryCredit     Category = "credit"
	CategoryDebit      Category = "debit"
	CategoryUPI        Category = "upi"
	CategoryNetBanking Category = "netbanking"
)

// CategoryDisplayOrder is the default order categories appear in suggestions
var CategoryDisplayOrder = []Category{
	CategoryCredit,
	CategoryDebit,
	CategoryUPI,
	CategoryNetBanking,
}

// ParseCategory converts a request string into a Category
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryCredit, CategoryDebit, CategoryUPI, CategoryNetBanking:
		return Category(s), nil
	}
	return "", ErrUnknownCategory
}

// RawRow is one parsed table row: column name -> cell value.
// Column names are preserved verbatim from the source file; missing cells
// are empty strings, never a stringified null.
type RawRow map[string]string

// SourceKind distinguishes merchant offer tables from the permanent-benefits table
type SourceKind string

const (
	SourceKindMerchant  SourceKind = "merchant"
	SourceKindPermanent SourceKind = "permanent"
)

// SourceTable is one externally loaded tabular dataset
type SourceTable struct {
	Name string
	Kind SourceKind
	Rows []RawRow
}

// CanonicalEntry is the deduplicated, display-ready form of an instrument
// name within one category. NormKey is the fully normalized form of Display
// and is unique per category.
type CanonicalEntry struct {
	Category Category `json:"category"`
	Display  string   `json:"display"`
	NormKey  string   `json:"-"`
}

// OfferRow is a RawRow tagged with the source table it came from
type OfferRow struct {
	Source string `json:"source"`
	Row    RawRow `json:"row"`
}

// MatchWrapper is one offer row that matched the selected instrument.
// VariantText is annotation only ("applicable only on {variant} variant");
// it never filters the match itself.
type MatchWrapper struct {
	Offer         OfferRow `json:"offer"`
	Source        string   `json:"source"`
	MatchCategory Category `json:"matchCategory"`
	VariantText   string   `json:"variantText,omitempty"`

	// Render-ready fields resolved via the column alias configuration
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
	Code        string `json:"code,omitempty"`
}

// SuggestionGroup is one category's ranked suggestion list
type SuggestionGroup struct {
	Category Category         `json:"category"`
	Entries  []CanonicalEntry `json:"entries"`
}

// SuggestResult is the full response to one query keystroke
type SuggestResult struct {
	Groups     []SuggestionGroup `json:"groups"`
	NoMatches  bool              `json:"noMatches"`
	NoData     bool              `json:"noData"`
	DidYouMean []string          `json:"didYouMean,omitempty"`
}
