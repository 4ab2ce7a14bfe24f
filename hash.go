package scrub

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint transformers replace a value with a deterministic hex digest.
// They are meant for identification and joins on sanitized data, NOT for
// passwords: there is no salt, so equal inputs produce equal outputs.

// SHA256Fingerprint replaces the value with its hex-encoded SHA-256 digest (64 characters).
type SHA256Fingerprint struct{}

func (SHA256Fingerprint) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		sum := sha256.Sum256([]byte(s))
		return hex.EncodeToString(sum[:])
	})
}

// SHA512Fingerprint replaces the value with its hex-encoded SHA-512 digest (128 characters).
type SHA512Fingerprint struct{}

func (SHA512Fingerprint) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		sum := sha512.Sum512([]byte(s))
		return hex.EncodeToString(sum[:])
	})
}

// BLAKE2bFingerprint replaces the value with its hex-encoded BLAKE2b-256 digest (64 characters).
type BLAKE2bFingerprint struct{}

func (BLAKE2bFingerprint) Sanitize(v *string) *string {
	return sanitizeString(v, func(s string) string {
		sum := blake2b.Sum256([]byte(s))
		return hex.EncodeToString(sum[:])
	})
}
