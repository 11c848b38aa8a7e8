package settle

import "strings"

// NameMatch reports whether a transaction counterparty string refers to a
// settle item. Both strings are case-folded; a substring hit either way
// matches immediately. Otherwise the common leading prefix must reach 3 runes
// when the counterparty starts with a Latin letter, or 2 runes otherwise —
// short Hangul tokens carry more information per rune than alphanumeric
// payment codes like "KT7710872402".
func NameMatch(counterparty, itemName string) bool {
	a := strings.ToLower(counterparty)
	b := strings.ToLower(itemName)
	ar, br := []rune(a), []rune(b)
	if len(ar) < 2 || len(br) < 2 {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	i := 0
	for i < len(ar) && i < len(br) && ar[i] == br[i] {
		i++
	}
	threshold := 2
	if ar[0] >= 'a' && ar[0] <= 'z' {
		threshold = 3
	}
	return i >= threshold
}
