package enquiry

import "strings"

// NormalizePhone converts a locally formatted phone number into E.164-ish form
// based on the selected country. Mirrors the storefront form rules: UK numbers
// drop the leading 0 under +44, 10-digit North American numbers gain +1, and
// anything else long enough to be a full number just gains a +.
func NormalizePhone(phone, countryCode string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if digits == "" {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(phone), "+") {
		return "+" + digits
	}

	switch strings.ToUpper(strings.TrimSpace(countryCode)) {
	case "GB":
		if strings.HasPrefix(digits, "0") {
			return "+44" + digits[1:]
		}
		if strings.HasPrefix(digits, "44") {
			return "+" + digits
		}
	case "US", "CA":
		if len(digits) == 10 {
			return "+1" + digits
		}
		if len(digits) == 11 && strings.HasPrefix(digits, "1") {
			return "+" + digits
		}
	}

	if len(digits) > 9 {
		return "+" + digits
	}
	return digits
}
