package settle

// ApplyBlockAmounts substitutes externally observed daily block amounts into
// designated occurrences. An occurrence qualifies when its item carries the
// block flag or when its name is the canonical label or one of its aliases.
// When a positive amount exists for the occurrence's date, the display name
// becomes the canonical label and the amount is replaced; the item itself is
// never written back. With no record for that date, the configured static
// amount stands.
func ApplyBlockAmounts(occs []Occurrence, amounts map[string]int64, label string, aliases []string) {
	for i := range occs {
		o := &occs[i]
		if !o.IsBlock && !blockName(o.Name, label, aliases) {
			continue
		}
		amt, ok := amounts[ISO(o.Date)]
		if !ok || amt <= 0 {
			continue
		}
		o.Name = label
		o.Amount = amt
		o.IsBlock = true
	}
}

func blockName(name, label string, aliases []string) bool {
	if name == label {
		return true
	}
	for _, a := range aliases {
		if name == a {
			return true
		}
	}
	return false
}
