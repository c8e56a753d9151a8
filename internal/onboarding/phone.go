package onboarding

import "strings"

const maxPhoneDigits = 11

// FormatPhone reformats raw phone input into the fixed Brazilian pattern
// as digits are typed: "(XX) XXXXX-XXXX" for mobile numbers, the 8-digit
// grouping "(XX) XXXX-XXXX" for landlines. Input is capped at 11
// significant digits; excess is discarded. Applying it to already
// formatted input is a no-op.
func FormatPhone(text string) string {
	cleaned := phoneDigits(text)
	if len(cleaned) > maxPhoneDigits {
		cleaned = cleaned[:maxPhoneDigits]
	}
	if cleaned == "" {
		return ""
	}
	if len(cleaned) < 3 {
		return "(" + cleaned
	}

	ddd := cleaned[:2]
	number := cleaned[2:]

	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(ddd)
	sb.WriteString(") ")

	if len(number) <= 8 {
		sb.WriteString(number[:min(4, len(number))])
		if len(number) > 4 {
			sb.WriteString("-")
			sb.WriteString(number[4:])
		}
	} else {
		sb.WriteString(number[:5])
		sb.WriteString("-")
		sb.WriteString(number[5:])
	}
	return sb.String()
}

func phoneDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
