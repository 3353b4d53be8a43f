package view

import "strings"

// FilterDigits keeps only ASCII digits.
func FilterDigits(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FilterDecimal keeps digits and '.'. Input holding more than one '.' is
// rejected whole: current comes back unchanged and ok is false.
func FilterDecimal(current, text string) (string, bool) {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	filtered := b.String()
	if strings.Count(filtered, ".") > 1 {
		return current, false
	}
	return filtered, true
}
