package scrub

import (
	"testing"
)

func sanitizeAll(t *testing.T, name string, tr Transformer[string], tests []struct {
	input    string
	expected string
}) {
	t.Helper()
	for _, tt := range tests {
		in := tt.input
		result := tr.Sanitize(&in)
		if result == nil {
			t.Errorf("%s(%q) = nil, want %q", name, tt.input, tt.expected)
			continue
		}
		if *result != tt.expected {
			t.Errorf("%s(%q) = %q, want %q", name, tt.input, *result, tt.expected)
		}
		if in != tt.input {
			t.Errorf("%s(%q) modified its input to %q", name, tt.input, in)
		}
	}
}

func TestCreditCardMask(t *testing.T) {
	sanitizeAll(t, "CreditCardMask", CreditCardMask{}, []struct {
		input    string
		expected string
	}{
		{"4111111111111234", "**** **** **** 1234"},
		{"4111 1111 1111 1234", "**** **** **** 1234"},
		{"4111-1111-1111-1234", "**** **** **** 1234"},
		{"378282246310005", "**** **** **** 0005"},
		{"12345", "**** **** **** 2345"},
		{"1234", "****"}, // Too short
		{"12", "****"},
		{"", "****"},
		{"no digits", "****"},
	})
}

func TestSSNMask(t *testing.T) {
	sanitizeAll(t, "SSNMask", SSNMask{}, []struct {
		input    string
		expected string
	}{
		{"123-45-6789", "***-**-6789"},
		{"123456789", "***-**-6789"},
		{"123 45 6789", "***-**-6789"},
		{"12-34-5678", "12-34-5678"}, // 8 digits, unchanged
		{"123", "123"},
		{"", ""},
	})
}

func TestIBANMask(t *testing.T) {
	sanitizeAll(t, "IBANMask", IBANMask{}, []struct {
		input    string
		expected string
	}{
		{"GB82WEST12345698765432", "******************5432"},
		{"GB82 WEST 1234 5698 7654 32", "******************5432"},
		{"AB12", "AB12"},
		{" A B ", "AB"},
	})
}

func TestEmailMask(t *testing.T) {
	sanitizeAll(t, "EmailMask", EmailMask{}, []struct {
		input    string
		expected string
	}{
		{"alice@example.com", "a***@example.com"},
		{"bob@test.org", "b***@test.org"},
		{"a@b.com", "a***@b.com"},
		{"élodie@exemple.fr", "é***@exemple.fr"},
		{"noatsign", "********"}, // No @
		{"@example.com", "************"},
	})
}

func TestPhoneMask(t *testing.T) {
	sanitizeAll(t, "PhoneMask", PhoneMask{}, []struct {
		input    string
		expected string
	}{
		{"(555) 123-4567", "(***) ***-4567"},
		{"555-123-4567", "***-***-4567"},
		{"5551234567", "***-***-4567"},
		{"123-4567", "***-4567"},
		{"123", "***"}, // Too short
	})
}

func TestIPMask(t *testing.T) {
	sanitizeAll(t, "IPMask", IPMask{}, []struct {
		input    string
		expected string
	}{
		{"192.168.1.100", "192.168.xxx.xxx"},
		{"10.0.0.1", "10.0.xxx.xxx"},
		{"2001:0db8:85a3:0000:0000:8a2e:0370:7334", "2001:0db8:85a3:0000:xxxx:xxxx:xxxx:xxxx"},
		{"2001:db8::1", "2001:db8:0000:0000:xxxx:xxxx:xxxx:xxxx"},
		{"::1", "0000:0000:0000:0000:xxxx:xxxx:xxxx:xxxx"},
		{"invalid", "*******"},
	})
}

func TestNameMask(t *testing.T) {
	sanitizeAll(t, "NameMask", NameMask{}, []struct {
		input    string
		expected string
	}{
		{"John Smith", "J*** S****"},
		{"Alice", "A****"},
		{"  Mary   Jane  Watson ", "M*** J*** W*****"},
		{"Zoë", "Z**"},
		{"", ""},
	})
}

func TestExpandIPv6(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2001:db8::1", "2001:db8:0000:0000:0000:0000:0000:1"},
		{"::", "0000:0000:0000:0000:0000:0000:0000:0000"},
		{"fe80::", "fe80:0000:0000:0000:0000:0000:0000:0000"},
		{"1:2:3:4:5:6:7:8", "1:2:3:4:5:6:7:8"},
		{"1::2::3", "1::2::3"},
	}

	for _, tt := range tests {
		if got := expandIPv6(tt.input); got != tt.expected {
			t.Errorf("expandIPv6(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestExtractDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(555) 123-4567", "5551234567"},
		{"abc", ""},
		{"١٢٣4", "4"}, // non-ASCII digits are ignored
	}

	for _, tt := range tests {
		if got := extractDigits(tt.input); got != tt.expected {
			t.Errorf("extractDigits(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
