package normalize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mobile plain", "0501234567", "050-1234567"},
		{"mobile with dashes", "050-123-4567", "050-1234567"},
		{"mobile with spaces", "050 123 4567", "050-1234567"},
		{"already canonical", "050-1234567", "050-1234567"},
		{"international plain", "972501234567", "+972-50-123-4567"},
		{"international with plus", "+972501234567", "+972-50-123-4567"},
		{"already canonical international", "+972-50-123-4567", "+972-50-123-4567"},
		{"landline too short for canonical", "025551234", "025551234"},
		{"garbage letters stripped", "tel: 0501234567", "050-1234567"},
		{"unrecognized length kept as digits", "12345", "12345"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Phone(tc.input))
		})
	}
}

// Phone must be idempotent for every input, canonical or not.
func TestPhone_Idempotent(t *testing.T) {
	samples := []string{
		"0501234567", "050-1234567", "+972-50-123-4567", "972501234567",
		"025551234", "12345", "", "no digits at all", "+1 (212) 555-0147",
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := rng.Intn(15)
		b := make([]byte, n)
		for j := range b {
			b[j] = "0123456789-+ ()abc"[rng.Intn(18)]
		}
		samples = append(samples, string(b))
	}

	for _, s := range samples {
		once := Phone(s)
		assert.Equal(t, once, Phone(once), "input %q", s)
	}
}

func TestDigitCount(t *testing.T) {
	assert.Equal(t, 10, DigitCount("050-1234567"))
	assert.Equal(t, 0, DigitCount("אין כאן מספר"))
}
