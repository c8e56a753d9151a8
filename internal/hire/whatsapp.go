package hire

import "strings"

// WhatsAppLink builds the https://wa.me deep link for a provider's phone.
// Every non-digit character is stripped and the country-code prefix is
// enforced when missing.
func WhatsAppLink(phone, countryCode string) string {
	digits := digitsOnly(phone)
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, countryCode) {
		digits = countryCode + digits
	}
	return "https://wa.me/" + digits
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
