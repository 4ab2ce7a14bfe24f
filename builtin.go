package scrub

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Built-in transformer names. Use these in struct tags: `scrub:"trim,lower"`
const (
	NameTrim               = "trim"
	NameLowerCase          = "lower"
	NameUpperCase          = "upper"
	NameTitleCase          = "title"
	NameCollapseWhitespace = "collapse_whitespace"
	NameRemoveNonPrintable = "strip_nonprintable"
	NameHTMLEscape         = "escape_html"
	NameStripHTML          = "strip_html"
	NameNullIfBlank        = "null_if_blank"
	NameSlugify            = "slug"
	NameSafeFilename       = "safe_filename"
	NameEmailAliasStrip    = "email_alias_strip"
	NamePhoneE164          = "phone_e164"
	NameUUIDNormalize      = "uuid"
	NameCreditCardMask     = "mask_card"
	NameSSNMask            = "mask_ssn"
	NameIBANMask           = "mask_iban"
	NameEmailMask          = "mask_email"
	NamePhoneMask          = "mask_phone"
	NameIPMask             = "mask_ip"
	NameNameMask           = "mask_name"
	NameSHA256             = "sha256"
	NameSHA512             = "sha512"
	NameBLAKE2b            = "blake2b"
)

// Trim removes leading and trailing whitespace.
type Trim struct{}

func (Trim) Sanitize(v *string) *string {
	return sanitizeString(v, strings.TrimSpace)
}

// LowerCase converts to lower case.
type LowerCase struct{}

func (LowerCase) Sanitize(v *string) *string {
	return sanitizeString(v, strings.ToLower)
}

// UpperCase converts to upper case.
type UpperCase struct{}

func (UpperCase) Sanitize(v *string) *string {
	return sanitizeString(v, strings.ToUpper)
}

// TitleCase trims, lower-cases and capitalizes the first letter.
// Blank input is returned unchanged.
type TitleCase struct{}

func (TitleCase) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		trimmed := strings.ToLower(strings.TrimSpace(s))
		if trimmed == "" {
			return s
		}
		r := []rune(trimmed)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	})
}

// CollapseWhitespace trims and replaces every run of whitespace with a single space.
type CollapseWhitespace struct{}

func (CollapseWhitespace) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	})
}

// RemoveNonPrintable drops ASCII control characters, keeping tab, newline and carriage return.
type RemoveNonPrintable struct{}

func (RemoveNonPrintable) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		return strings.Map(func(r rune) rune {
			if (r < 0x20 || r == 0x7f) && r != '\n' && r != '\r' && r != '\t' {
				return -1
			}
			return r
		}, s)
	})
}

// HTMLEscape escapes & < > " and '. An ampersand that already starts a
// character reference is left alone, so escaping twice changes nothing.
type HTMLEscape struct{}

func (HTMLEscape) Sanitize(v *string) *string {
	return sanitizeString(v, escapeHTML)
}

func escapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if n := entityLen(s[i:]); n > 0 {
				b.WriteString(s[i : i+n])
				i += n - 1
				continue
			}
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// entityLen returns the length of the character reference at the start of s, or 0.
// Recognizes &name; &#123; and &#x1F; forms.
func entityLen(s string) int {
	end := strings.IndexByte(s, ';')
	if end < 2 || end > 10 {
		return 0
	}
	body := s[1:end]
	if body[0] == '#' {
		digits := body[1:]
		hex := false
		if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
			digits = digits[1:]
			hex = true
		}
		if digits == "" {
			return 0
		}
		for _, r := range digits {
			if !(r >= '0' && r <= '9') && !(hex && strings.ContainsRune("abcdefABCDEF", r)) {
				return 0
			}
		}
		return end + 1
	}
	for _, r := range body {
		if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return 0
		}
	}
	return end + 1
}

// StripHTML removes all markup using a strict bluemonday policy.
type StripHTML struct {
	policy *bluemonday.Policy
}

// NewStripHTML returns a StripHTML transformer.
func NewStripHTML() *StripHTML {
	return &StripHTML{policy: bluemonday.StrictPolicy()}
}

func (t *StripHTML) Sanitize(v *string) *string {
	return sanitizeString(v, t.policy.Sanitize)
}

// NullIfBlank clears values that are empty after trimming.
type NullIfBlank struct{}

func (NullIfBlank) Sanitize(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	out := *v
	return &out
}

// Slugify folds diacritics, lower-cases and joins alphanumeric runs with "-".
type Slugify struct{}

func (Slugify) Sanitize(v *string) *string {
	return sanitizeString(v, slugify)
}

func slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastDash := true
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SafeFilename trims and replaces characters that are not allowed in file names with "_".
type SafeFilename struct{}

func (SafeFilename) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		return strings.Map(func(r rune) rune {
			if strings.ContainsRune(`\/:*?"<>|`, r) {
				return '_'
			}
			return r
		}, strings.TrimSpace(s))
	})
}

// EmailAliasStrip trims, lower-cases and removes a "+alias" from the local part.
type EmailAliasStrip struct{}

func (EmailAliasStrip) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		at := strings.IndexByte(s, '@')
		if at < 0 {
			return s
		}
		plus := strings.IndexByte(s[:at], '+')
		if plus <= 0 || plus == at-1 {
			return s
		}
		return s[:plus] + s[at:]
	})
}

// PhoneE164 keeps only digits and prefixes "+". Input without digits becomes absent.
type PhoneE164 struct{}

func (PhoneE164) Sanitize(v *string) *string {
	if v == nil {
		return nil
	}
	digits := extractDigits(*v)
	if digits == "" {
		return nil
	}
	out := "+" + digits
	return &out
}

// UUIDNormalize trims, strips braces and renders valid UUIDs in canonical lower-case form.
// Anything else is trimmed and lower-cased.
type UUIDNormalize struct{}

func (UUIDNormalize) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		trimmed := strings.TrimSpace(s)
		if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
			trimmed = trimmed[1 : len(trimmed)-1]
		}
		id, err := uuid.Parse(trimmed)
		if err != nil {
			return strings.ToLower(trimmed)
		}
		return id.String()
	})
}

// Builtins returns catalog entries for every built-in transformer.
func Builtins() []Entry {
	return []Entry{
		Instance[string](NameTrim, Trim{}),
		Instance[string](NameLowerCase, LowerCase{}),
		Instance[string](NameUpperCase, UpperCase{}),
		Instance[string](NameTitleCase, TitleCase{}),
		Instance[string](NameCollapseWhitespace, CollapseWhitespace{}),
		Instance[string](NameRemoveNonPrintable, RemoveNonPrintable{}),
		Instance[string](NameHTMLEscape, HTMLEscape{}),
		Define(NameStripHTML, func() (Transformer[string], error) {
			return NewStripHTML(), nil
		}),
		Instance[string](NameNullIfBlank, NullIfBlank{}),
		Instance[string](NameSlugify, Slugify{}),
		Instance[string](NameSafeFilename, SafeFilename{}),
		Instance[string](NameEmailAliasStrip, EmailAliasStrip{}),
		Instance[string](NamePhoneE164, PhoneE164{}),
		Instance[string](NameUUIDNormalize, UUIDNormalize{}),
		Instance[string](NameCreditCardMask, CreditCardMask{}),
		Instance[string](NameSSNMask, SSNMask{}),
		Instance[string](NameIBANMask, IBANMask{}),
		Instance[string](NameEmailMask, EmailMask{}),
		Instance[string](NamePhoneMask, PhoneMask{}),
		Instance[string](NameIPMask, IPMask{}),
		Instance[string](NameNameMask, NameMask{}),
		Instance[string](NameSHA256, SHA256Fingerprint{}),
		Instance[string](NameSHA512, SHA512Fingerprint{}),
		Instance[string](NameBLAKE2b, BLAKE2bFingerprint{}),
	}
}
