package natsort

import (
	"slices"
	"strings"
)

// TokenKind tags a Token as numeric or textual.
type TokenKind int

const (
	// Number is a run of ASCII digits compared by value.
	Number TokenKind = iota

	// Text is a run of non-digits compared lexicographically after lower-casing.
	Text
)

// Token is one element of a natural sort key.
//
// For Number tokens Value holds the digit run with leading zeros removed
// ("0" for an all-zero run), which lets arbitrarily long runs compare by
// value without overflowing an integer type.
type Token struct {
	Kind  TokenKind
	Value string
}

// Key splits s into alternating digit and non-digit runs.
func Key(s string) []Token {
	var key []Token
	for i := 0; i < len(s); {
		j := i
		digits := isDigit(s[i])
		for j < len(s) && isDigit(s[j]) == digits {
			j++
		}
		run := s[i:j]
		if digits {
			key = append(key, Token{Kind: Number, Value: trimZeros(run)})
		} else {
			key = append(key, Token{Kind: Text, Value: strings.ToLower(run)})
		}
		i = j
	}
	return key
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func trimZeros(run string) string {
	trimmed := strings.TrimLeft(run, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal
// to, or after b.
func Compare(a, b string) int {
	return CompareKeys(Key(a), Key(b))
}

// CompareKeys compares two precomputed keys element-wise. A key that is a
// prefix of the other sorts first.
func CompareKeys(a, b []Token) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareToken(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func compareToken(a, b Token) int {
	if a.Kind != b.Kind {
		if a.Kind == Number {
			return -1
		}
		return 1
	}
	if a.Kind == Text {
		return strings.Compare(a.Value, b.Value)
	}
	// Both values are stripped of leading zeros, so a longer run is larger.
	if len(a.Value) != len(b.Value) {
		if len(a.Value) < len(b.Value) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Value, b.Value)
}

// Sort orders names in place. The sort is stable: names with equal keys
// ("img01" and "IMG1") keep their input order. Keys are computed once per
// name.
func Sort(names []string) {
	type keyed struct {
		key  []Token
		name string
	}
	tmp := make([]keyed, len(names))
	for i, name := range names {
		tmp[i] = keyed{key: Key(name), name: name}
	}
	slices.SortStableFunc(tmp, func(a, b keyed) int {
		return CompareKeys(a.key, b.key)
	})
	for i := range tmp {
		names[i] = tmp[i].name
	}
}
