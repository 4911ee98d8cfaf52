package validators

import "strings"

// DigitsOnly strips everything but 0-9, e.g. "(11) 4555-1234" -> "1145551234".
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone returns area code and number as digits. ok is false when
// either part is empty once cleaned.
func NormalizePhone(codArea, phone string) (string, string, bool) {
	area := strings.TrimLeft(DigitsOnly(codArea), "0")
	number := DigitsOnly(phone)
	if area == "" || number == "" || len(number) < 6 {
		return area, number, false
	}
	return area, number, true
}
