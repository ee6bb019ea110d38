package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	nonWordRegex        = regexp.MustCompile(`[^\w\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)

	// One trailing parenthetical group, anchored at the end of the string
	trailingVariantRegex = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)\s*$`)

	// List delimiters between instrument names within one cell: comma,
	// slash, semicolon, pipe, line breaks, or the standalone word "and"
	listDelimRegex = regexp.MustCompile(`(?i)\s*(?:[,;/|\r\n]+|\band\b)\s*`)

	parenSpanRegex = regexp.MustCompile(`\([^()]*\)`)
	spanRefRegex   = regexp.MustCompile("\x00(\\d+)\x00")
)

// brandSpellings maps lowercase brand abbreviations to their canonical
// display spelling. Applied word-boundary-safe to display text only; the
// normKey is unaffected since normalization lower-cases anyway.
var brandSpellings = map[string]string{
	"hdfc":     "HDFC",
	"icici":    "ICICI",
	"sbi":      "SBI",
	"axis":     "Axis",
	"idfc":     "IDFC",
	"rbl":      "RBL",
	"hsbc":     "HSBC",
	"pnb":      "PNB",
	"kotak":    "Kotak",
	"amex":     "Amex",
	"upi":      "UPI",
	"yes":      "YES",
	"indusind": "IndusInd",
}

// brandRegexes holds the compiled word-boundary pattern per brand spelling
var brandRegexes = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(brandSpellings))
	for brand := range brandSpellings {
		patterns[brand] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(brand) + `\b`)
	}
	return patterns
}()

// Normalize canonicalizes free text into a comparable form: Unicode
// compatibility decomposition, lowercase, every non-word non-space rune
// replaced by a space, whitespace collapsed, trimmed. Total function:
// empty input yields empty output. Idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	result := norm.NFKD.String(text)
	result = strings.ToLower(result)
	result = nonWordRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// NormalizeColumnName normalizes a column header for comparison.
// Same rules as Normalize; named separately because column-name drift
// ("Eligible  Credit Cards", "eligible credit cards") is the reason the
// Column Resolver exists at all.
func NormalizeColumnName(name string) string {
	return Normalize(name)
}

// CanonicalizeBrands rewrites known brand-abbreviation case variants to
// their canonical spelling ("hdfc bank" -> "HDFC bank"). Word-boundary
// safe, so "upi" inside another word is left alone.
func CanonicalizeBrands(text string) string {
	for brand, re := range brandRegexes {
		text = re.ReplaceAllString(text, brandSpellings[brand])
	}
	return text
}

// BaseName strips one trailing parenthetical variant qualifier and
// surrounding whitespace. Parentheses earlier in the string are part of
// the base: "Card (Gold) (Visa)" -> "Card (Gold)".
func BaseName(name string) string {
	if m := trailingVariantRegex.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(name)
}

// VariantName extracts the content of the trailing parenthetical stripped
// by BaseName, or "" if there is none.
func VariantName(name string) string {
	if m := trailingVariantRegex.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[2])
	}
	return ""
}

// SplitInstrumentList splits a single cell into raw instrument-name tokens.
// Parenthetical spans are isolated before splitting so a variant qualifier
// containing a delimiter ("Card X (Tier, Gold)") stays one token.
func SplitInstrumentList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}

	var spans []string
	masked := parenSpanRegex.ReplaceAllStringFunc(cell, func(span string) string {
		spans = append(spans, span)
		return fmt.Sprintf("\x00%d\x00", len(spans)-1)
	})

	parts := listDelimRegex.Split(masked, -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		part = spanRefRegex.ReplaceAllStringFunc(part, func(ref string) string {
			idx, err := strconv.Atoi(strings.Trim(ref, "\x00"))
			if err != nil || idx >= len(spans) {
				return ref
			}
			return spans[idx]
		})
		part = strings.TrimSpace(part)
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// CanonicalKey collapses a raw name token to the normKey used for
// registry membership and offer eligibility: base name, brand-canonical
// display, fully normalized.
func CanonicalKey(token string) string {
	return Normalize(CanonicalizeBrands(BaseName(token)))
}
