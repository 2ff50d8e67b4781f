// Package normalize contains the pure validation and canonicalization
// helpers applied to guest fields before anything reaches the wire.
package normalize

import "strings"

// Phone canonicalizes a phone number. Recognizable Israeli numbers come out
// in dashed form ("0XX-XXXXXXX" for local, "+972-XX-XXX-XXXX" for
// international); anything else is reduced to its digits. Idempotent:
// Phone(Phone(s)) == Phone(s).
func Phone(s string) string {
	digits := digitsOnly(s)

	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		return digits[:3] + "-" + digits[3:]
	case len(digits) == 12 && strings.HasPrefix(digits, "972"):
		return "+972-" + digits[3:5] + "-" + digits[5:8] + "-" + digits[8:]
	default:
		return digits
	}
}

// digitsOnly strips every non-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DigitCount returns the number of digit runes in s. The importer uses it
// to sniff phone columns without committing to a format.
func DigitCount(s string) int {
	return len(digitsOnly(s))
}
