package domain

// ColumnAliasSet holds the ordered column-name alias lists tried per logical
// field. Different source tables label the same field differently ("Eligible
// Credit Cards" vs "Eligible Cards"), so the lists are configuration, not
// constants baked into matching logic. Order matters: earlier aliases win.
type ColumnAliasSet struct {
	Credit     []string `mapstructure:"credit"`
	Debit      []string `mapstructure:"debit"`
	UPI        []string `mapstructure:"upi"`
	NetBanking []string `mapstructure:"netbanking"`

	Title       []string `mapstructure:"title"`
	Description []string `mapstructure:"description"`
	Image       []string `mapstructure:"image"`
	Link        []string `mapstructure:"link"`
	Code        []string `mapstructure:"code"`

	// TypeHint is a row-level instrument-type field ("Card Type": "Debit")
	TypeHint []string `mapstructure:"type_hint"`

	// PermanentName is the one-instrument-per-row column of the
	// permanent-benefits table
	PermanentName []string `mapstructure:"permanent_name"`
}

// ForCategory returns the instrument-list aliases for a category
func (a ColumnAliasSet) ForCategory(c Category) []string {
	switch c {
	case CategoryCredit:
		return a.Credit
	case CategoryDebit:
		return a.Debit
	case CategoryUPI:
		return a.UPI
	case CategoryNetBanking:
		return a.NetBanking
	}
	return nil
}

// DefaultColumnAliases covers the column-naming conventions of the known
// source tables. New tables with new conventions are handled via config.
func DefaultColumnAliases() ColumnAliasSet {
	return ColumnAliasSet{
		Credit: []string{
			"Eligible Credit Cards", "Eligible Cards", "Credit Cards",
			"Credit Card", "Applicable Credit Cards", "Cards",
		},
		Debit: []string{
			"Eligible Debit Cards", "Debit Cards", "Debit Card",
			"Applicable Debit Cards",
		},
		UPI: []string{
			"Eligible UPI", "UPI", "UPI Apps", "UPI Handles",
		},
		NetBanking: []string{
			"Eligible Net Banking", "Net Banking", "Netbanking",
			"Net Banking Banks",
		},
		Title: []string{
			"Offer Title", "Title", "Offer Name", "Offer",
		},
		Description: []string{
			"Description", "Offer Description", "Terms", "Details",
		},
		Image: []string{
			"Image", "Image URL", "Offer Image", "Logo",
		},
		Link: []string{
			"Link", "Offer Link", "URL", "Know More",
		},
		Code: []string{
			"Promo Code", "Code", "Coupon Code", "Offer Code",
		},
		TypeHint: []string{
			"Card Type", "Type", "Instrument Type", "Payment Type",
		},
		PermanentName: []string{
			"Credit Card Name", "Card Name",
		},
	}
}
