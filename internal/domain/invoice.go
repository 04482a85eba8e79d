package domain

import (
	"regexp"
	"strings"
)

// InvoiceKey is a normalized invoice identifier in the form SS-NNNNNN
type InvoiceKey string

// strictKeyPattern matches an already formatted invoice key
var strictKeyPattern = regexp.MustCompile(`^\d{2}-\d{6}$`)

// String returns the key as a plain string
func (k InvoiceKey) String() string {
	return string(k)
}

// Normalize canonicalizes a free-form invoice identifier into an InvoiceKey.
// Every non-digit character is dropped; the first two digits form the series
// and the rest the number. Inputs with fewer than three digits are invalid.
func Normalize(raw string) (InvoiceKey, bool) {
	digits := OnlyDigits(raw)
	if len(digits) < 3 {
		return "", false
	}

	return buildKey(digits[:2], digits[2:]), true
}

// FormatKey builds an InvoiceKey from separate series and number digit strings,
// applying the same zero-padding rule as Normalize. Empty values count as zero.
func FormatKey(series, number string) (InvoiceKey, bool) {
	series = strings.TrimSpace(series)
	number = strings.TrimSpace(number)
	if !isDigits(series) || !isDigits(number) {
		return "", false
	}
	return buildKey(series, number), true
}

// IsStrictKey reports whether s is exactly two digits, a hyphen and six digits
func IsStrictKey(s string) bool {
	return strictKeyPattern.MatchString(s)
}

// SplitInvoiceDigits splits a raw invoice filter into series and number with
// leading zeros removed ("0" when nothing is left). ok is false when fewer
// than three digits are present.
func SplitInvoiceDigits(raw string) (series, number string, ok bool) {
	digits := OnlyDigits(raw)
	if len(digits) < 3 {
		return "", "", false
	}
	return trimLeadingZeros(digits[:2]), trimLeadingZeros(digits[2:]), true
}

// OnlyDigits returns s with every non-digit character removed
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// buildKey renders series and number as integers zero-padded to widths 2 and 6.
// Numbers wider than six digits are kept whole, never truncated.
func buildKey(series, number string) InvoiceKey {
	return InvoiceKey(padLeft(trimLeadingZeros(series), 2) + "-" + padLeft(trimLeadingZeros(number), 6))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimLeadingZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}
