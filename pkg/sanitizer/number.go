package sanitizer

// DigitsOnly strips every non-digit rune and truncates the result to maxLen.
// A maxLen of zero or less means no truncation. Mirrors the mobile-number
// input filter on the booking form.
func DigitsOnly(s string, maxLen int) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		b = append(b, c)
		if maxLen > 0 && len(b) == maxLen {
			break
		}
	}
	return string(b)
}
