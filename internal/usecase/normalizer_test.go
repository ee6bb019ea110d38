package usecase

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "HDFC Regalia", "hdfc regalia"},
		{"strips punctuation", "ICICI-Amazon Pay!", "icici amazon pay"},
		{"collapses whitespace", "  SBI   SimplyCLICK  ", "sbi simplyclick"},
		{"empty input", "", ""},
		{"whitespace only", "   \t ", ""},
		{"unicode compatibility form", "Ｈｄｆｃ Ｂａｎｋ", "hdfc bank"},
		{"keeps digits", "Axis Magnus 2.0", "axis magnus 2 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"HDFC Regalia (Visa Signature)",
		"  ICICI/Amazon  Pay ",
		"paytm UPI",
		"",
		"Ｈｄｆｃ",
	}
	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestCanonicalizeBrands(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hdfc regalia", "HDFC regalia"},
		{"Hdfc Regalia", "HDFC Regalia"},
		{"icici amazon pay", "ICICI amazon pay"},
		{"paytm upi", "paytm UPI"},
		{"no brands here", "no brands here"},
		// word-boundary safety: brand letters inside another word stay put
		{"supine cushion", "supine cushion"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CanonicalizeBrands(tt.input); got != tt.want {
				t.Errorf("CanonicalizeBrands(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBaseNameAndVariant(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantBase    string
		wantVariant string
	}{
		{"well-formed", "HDFC Regalia (Visa Signature)", "HDFC Regalia", "Visa Signature"},
		{"no parenthetical", "HDFC Regalia", "HDFC Regalia", ""},
		{"only last trailing group stripped", "Card (Gold) (Visa)", "Card (Gold)", "Visa"},
		{"inner parenthetical preserved", "Club (Premium) Card", "Club (Premium) Card", ""},
		{"whitespace around", "  Axis Magnus ( Mastercard ) ", "Axis Magnus", "Mastercard"},
		{"empty variant", "Card ()", "Card", ""},
		{"empty input", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseName(tt.input); got != tt.wantBase {
				t.Errorf("BaseName(%q) = %q, want %q", tt.input, got, tt.wantBase)
			}
			if got := VariantName(tt.input); got != tt.wantVariant {
				t.Errorf("VariantName(%q) = %q, want %q", tt.input, got, tt.wantVariant)
			}
		})
	}
}

func TestBaseName_RoundTrip(t *testing.T) {
	// base + " (" + variant + ")" must decompose back into base and variant
	pairs := []struct{ base, variant string }{
		{"HDFC Regalia", "Visa Signature"},
		{"ICICI Coral", "Rupay"},
		{"Select Gold Card", "Tier 1"},
	}
	for _, p := range pairs {
		joined := p.base + " (" + p.variant + ")"
		if got := BaseName(joined); got != p.base {
			t.Errorf("BaseName(%q) = %q, want %q", joined, got, p.base)
		}
		if got := VariantName(joined); got != p.variant {
			t.Errorf("VariantName(%q) = %q, want %q", joined, got, p.variant)
		}
	}
}

func TestSplitInstrumentList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"comma separated",
			"HDFC Regalia, ICICI Amazon Pay",
			[]string{"HDFC Regalia", "ICICI Amazon Pay"},
		},
		{
			"mixed delimiters",
			"A / B; C | D",
			[]string{"A", "B", "C", "D"},
		},
		{
			"word and",
			"HDFC Regalia and SBI Elite",
			[]string{"HDFC Regalia", "SBI Elite"},
		},
		{
			"and inside a word is not a delimiter",
			"Standard Chartered Ultimate",
			[]string{"Standard Chartered Ultimate"},
		},
		{
			"line breaks",
			"Card A\nCard B\r\nCard C",
			[]string{"Card A", "Card B", "Card C"},
		},
		{
			"delimiter inside parenthetical stays one token",
			"Card X (Tier, Gold), Card Y",
			[]string{"Card X (Tier, Gold)", "Card Y"},
		},
		{
			"and inside parenthetical stays one token",
			"Card X (Gold and Platinum), Card Y",
			[]string{"Card X (Gold and Platinum)", "Card Y"},
		},
		{
			"drops empty pieces",
			", HDFC Regalia,, ,",
			[]string{"HDFC Regalia"},
		},
		{"empty cell", "", nil},
		{"whitespace cell", "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitInstrumentList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitInstrumentList(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"HDFC Regalia (Visa Signature)", "hdfc regalia"},
		{"hdfc regalia", "hdfc regalia"},
		{"  ICICI Amazon Pay  ", "icici amazon pay"},
	}
	for _, tt := range tests {
		if got := CanonicalKey(tt.input); got != tt.want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
