package client

import "strings"

// NormalizePhone strips everything but digits and keeps the first ten,
// so formatted input like "(555) 123-4567" becomes "5551234567".
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			if digits.Len() == 10 {
				break
			}
		}
	}
	return digits.String()
}

// ValidPhone reports whether the normalized phone number is exactly ten digits
func ValidPhone(raw string) bool {
	return len(NormalizePhone(raw)) == 10
}

// ValidEmail performs the same lightweight check the screens do before
// submitting: exactly one "@" with a dot somewhere after it.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
