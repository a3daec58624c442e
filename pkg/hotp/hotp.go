// Package hotp implements HMAC-based one-time password generation as
// defined by RFC 4226. It is the counter-driven core that the totp
// package and the high-level otp authenticator build on.
//
// Checksum digits (RFC 4226 section 5.1.1.2) are not supported; codes
// consist solely of the truncated HMAC rendered in decimal.
package hotp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
)

// Common errors returned by the HOTP generator.
var (
	// ErrEmptySecret indicates a zero-length shared secret.
	ErrEmptySecret = errors.New("hotp: secret must not be empty")
	// ErrInvalidDigits indicates a non-positive code length.
	ErrInvalidDigits = errors.New("hotp: digits must be at least 1")
	// ErrHashTooShort indicates the truncation window would read past
	// the end of the HMAC output.
	ErrHashTooShort = errors.New("hotp: hash too short for truncation offset")
)

// Truncation selects how the 4-byte extraction window is chosen from
// the HMAC output.
type Truncation struct {
	manual bool
	offset int
}

// Dynamic selects the offset from the low nibble of the final HMAC
// byte (RFC 4226 section 5.3). The offset is always in [0, 15], so the
// extraction never reads past a 20-byte SHA-1 digest.
func Dynamic() Truncation {
	return Truncation{}
}

// Manual requests a fixed truncation offset. Matching the RFC 4226
// reference implementation, the offset is honored only when it is
// non-negative and strictly less than the numeric value of the
// fourth-from-last HMAC byte; otherwise generation falls back to
// dynamic truncation.
func Manual(offset int) Truncation {
	return Truncation{manual: true, offset: offset}
}

// Generate derives the HOTP code for the given secret and counter.
//
// The counter is encoded as 8 big-endian bytes and authenticated with
// HMAC over the supplied digest constructor (SHA-1 when algorithm is
// nil). Four bytes are extracted at the truncation offset, the top bit
// is cleared, and the resulting 31-bit integer is reduced modulo
// 10^digits and rendered as a left-zero-padded decimal string of
// exactly digits characters.
//
// Generate is deterministic: identical inputs always produce the
// identical code. It is safe for concurrent use.
func Generate(secret []byte, counter uint64, digits int, trunc Truncation, algorithm func() hash.Hash) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	if digits < 1 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidDigits, digits)
	}
	if algorithm == nil {
		algorithm = sha1.New
	}

	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], counter)

	mac := hmac.New(algorithm, secret)
	mac.Write(counterBytes[:])
	sum := mac.Sum(nil)

	if len(sum) < 4 {
		return "", fmt.Errorf("%w: %d-byte hash", ErrHashTooShort, len(sum))
	}

	offset := int(sum[len(sum)-1] & 0x0F)
	if trunc.manual && trunc.offset >= 0 && trunc.offset < int(sum[len(sum)-4]) {
		offset = trunc.offset
	}
	if offset+4 > len(sum) {
		return "", fmt.Errorf("%w: offset %d with %d-byte hash", ErrHashTooShort, offset, len(sum))
	}

	// Clearing the top bit guarantees a non-negative 31-bit value
	// regardless of host integer width.
	binaryCode := uint32(sum[offset]&0x7F)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	code := uint64(binaryCode)
	if digits < 10 {
		code %= pow10(digits)
	}

	return fmt.Sprintf("%0*d", digits, code), nil
}

func pow10(n int) uint64 {
	p := uint64(1)
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}
