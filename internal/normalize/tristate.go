package normalize

import "strings"

// TriState coerces an arbitrary confirmation value into the tri-state
// domain: true (confirmed), false (declined), nil (pending). The store
// never sees any other value.
func TriState(v any) *bool {
	switch value := v.(type) {
	case nil:
		return nil
	case *bool:
		if value == nil {
			return nil
		}
		b := *value
		return &b
	case bool:
		b := value
		return &b
	case int:
		return triFromNumber(float64(value))
	case float64:
		return triFromNumber(value)
	case string:
		return triFromString(value)
	default:
		return nil
	}
}

func triFromNumber(f float64) *bool {
	switch f {
	case 1:
		b := true
		return &b
	case 0:
		b := false
		return &b
	}
	return nil
}

func triFromString(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirmed", "true", "yes", "1", "מגיע", "מגיעים", "אישר":
		b := true
		return &b
	case "declined", "false", "no", "0", "לא מגיע", "לא מגיעים", "סירב":
		b := false
		return &b
	}
	return nil
}
