package settle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameMatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		counterparty, itemName string
		want                   bool
	}{
		// Latin counterparty: prefix of at least 3 runes.
		{"KT7710872402", "kt7710", true},
		{"KT7710872402", "KY9999", false},
		{"abc111", "abd222", false}, // prefix 2 < 3
		// Hangul counterparty: prefix of at least 2 runes.
		{"청호나이스", "청호렌탈", true},
		{"청개구리", "청소년수련관", false}, // prefix 1 < 2
		// Substring either way matches immediately.
		{"스타벅스코리아", "스타벅스", true},
		{"넷플릭스", "넷플릭스코리아", true},
		// No overlap.
		{"ab", "xy", false},
		// Either operand shorter than 2 runes never matches.
		{"a", "amazon", false},
		{"아마존", "아", false},
		{"", "telecom", false},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, NameMatch(c.counterparty, c.itemName),
			"NameMatch(%q, %q)", c.counterparty, c.itemName)
	}
}
