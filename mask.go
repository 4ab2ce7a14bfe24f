package scrub

import (
	"strings"
	"unicode"
)

// maskKeep is the number of trailing characters masks preserve.
const maskKeep = 4

// maskSentinel replaces card numbers too short to mask meaningfully.
const maskSentinel = "****"

// CreditCardMask keeps the last 4 digits in a fixed "**** **** **** 1234" layout.
// Input with 4 digits or fewer becomes "****" regardless of its length.
type CreditCardMask struct{}

func (CreditCardMask) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		digits := extractDigits(s)
		if len(digits) <= maskKeep {
			return maskSentinel
		}
		return "**** **** **** " + digits[len(digits)-maskKeep:]
	})
}

// SSNMask masks a 9-digit Social Security Number as ***-**-6789.
// Anything that does not contain exactly 9 digits is returned unchanged.
type SSNMask struct{}

func (SSNMask) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		digits := extractDigits(s)
		if len(digits) != 9 {
			return s
		}
		return "***-**-" + digits[5:]
	})
}

// IBANMask removes whitespace and masks everything but the last 4 characters.
type IBANMask struct{}

func (IBANMask) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		plain := strings.Join(strings.Fields(s), "")
		r := []rune(plain)
		if len(r) <= maskKeep {
			return plain
		}
		return strings.Repeat("*", len(r)-maskKeep) + string(r[len(r)-maskKeep:])
	})
}

// EmailMask keeps the first character of the local part and the domain:
// alice@example.com -> a***@example.com
type EmailMask struct{}

func (EmailMask) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		atIdx := strings.LastIndex(s, "@")
		if atIdx < 1 {
			// No @ or @ at start, mask everything
			return strings.Repeat("*", len(s))
		}
		first := []rune(s[:atIdx])[0]
		return string(first) + "***" + s[atIdx:]
	})
}

// PhoneMask keeps the last 4 digits: (555) 123-4567 -> (***) ***-4567
type PhoneMask struct{}

func (PhoneMask) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		digits := extractDigits(s)
		if len(digits) < maskKeep {
			return strings.Repeat("*", len(s))
		}

		last4 := digits[len(digits)-maskKeep:]
		switch {
		case strings.HasPrefix(s, "(") && len(digits) >= 10:
			return "(***) ***-" + last4
		case len(digits) >= 10:
			return "***-***-" + last4
		default:
			return "***-" + last4
		}
	})
}

// IPMask keeps the network part of an address.
// IPv4: 192.168.1.100 -> 192.168.xxx.xxx
// IPv6: first four groups kept, interface ID masked.
type IPMask struct{}

func (IPMask) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		if parts := strings.Split(s, "."); len(parts) == 4 {
			return parts[0] + "." + parts[1] + ".xxx.xxx"
		}
		if strings.Contains(s, ":") {
			return maskIPv6(s)
		}
		return strings.Repeat("*", len(s))
	})
}

// maskIPv6 masks an IPv6 address, preserving the 64-bit network prefix.
func maskIPv6(value string) string {
	parts := strings.Split(expandIPv6(value), ":")
	if len(parts) != 8 {
		return strings.Repeat("*", len(value))
	}
	return strings.Join(parts[:4], ":") + ":xxxx:xxxx:xxxx:xxxx"
}

// expandIPv6 expands :: notation to the full 8-group form.
func expandIPv6(value string) string {
	if !strings.Contains(value, "::") {
		return value
	}

	halves := strings.Split(value, "::")
	if len(halves) != 2 {
		return value
	}

	var left, right []string
	if halves[0] != "" {
		left = strings.Split(halves[0], ":")
	}
	if halves[1] != "" {
		right = strings.Split(halves[1], ":")
	}

	missing := 8 - len(left) - len(right)
	if missing < 0 {
		return value
	}

	all := make([]string, 0, 8)
	all = append(all, left...)
	for range missing {
		all = append(all, "0000")
	}
	all = append(all, right...)
	return strings.Join(all, ":")
}

// NameMask keeps the first letter of each word: John Smith -> J*** S****
type NameMask struct{}

func (NameMask) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		words := strings.Fields(s)
		for i, word := range words {
			r := []rune(word)
			words[i] = string(r[0]) + strings.Repeat("*", len(r)-1)
		}
		return strings.Join(words, " ")
	})
}

// extractDigits returns only the digit characters from a string.
func extractDigits(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}
