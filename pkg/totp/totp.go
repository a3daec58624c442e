package totp

import (
	"crypto/sha1"
	"encoding/base32"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"

	"github.com/jeremyhahn/go-otp/pkg/hotp"
)

// Defaults applied by NewMapper when the corresponding Config field is
// zero.
const (
	// DefaultPeriod is the RFC 6238 recommended time step in seconds.
	DefaultPeriod = 30
	// DefaultDigits is the code length used by most authenticator apps.
	DefaultDigits = 6
)

// Common errors returned by the time-window mapper.
var (
	// ErrEmptySecret indicates a zero-length shared secret.
	ErrEmptySecret = errors.New("totp: secret must not be empty")
	// ErrInvalidPeriod indicates a non-positive time step.
	ErrInvalidPeriod = errors.New("totp: period must be positive")
	// ErrSecretDecode indicates a base32 secret that could not be
	// decoded.
	ErrSecretDecode = errors.New("totp: secret is not valid base32")
)

// Window holds the codes for three adjacent time steps in fixed
// order: the step before the reference instant, the step containing
// it, and the step after. Accepting any member absorbs one step of
// clock drift between generator and verifier.
type Window struct {
	Previous string
	Current  string
	Next     string
}

// Codes returns the window contents ordered previous, current, next.
func (w Window) Codes() [3]string {
	return [3]string{w.Previous, w.Current, w.Next}
}

// Contains reports whether code matches any element of the window.
// The comparison is plain string equality; callers needing timing
// guarantees must compare on their own terms.
func (w Window) Contains(code string) bool {
	return code == w.Previous || code == w.Current || code == w.Next
}

// Config holds time-window mapper configuration.
type Config struct {
	// Secret is the raw (already decoded) shared secret (required).
	Secret []byte
	// Period is the time step in seconds. Default: 30
	Period uint
	// Digits is the code length. Default: 6
	Digits uint
	// Algorithm is the digest constructor for the underlying HMAC.
	// Default: SHA-1
	Algorithm func() hash.Hash
}

func (c Config) validate() error {
	if len(c.Secret) == 0 {
		return ErrEmptySecret
	}
	return nil
}

// Mapper converts instants into moving factors and derives the HOTP
// codes for the surrounding time windows. It is immutable after
// construction and safe for concurrent use.
type Mapper struct {
	secret    []byte
	period    int64
	digits    int
	algorithm func() hash.Hash
}

// NewMapper creates a time-window mapper from cfg, applying defaults
// for zero-valued fields.
func NewMapper(cfg Config) (*Mapper, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Period == 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.Digits == 0 {
		cfg.Digits = DefaultDigits
	}
	if cfg.Algorithm == nil {
		cfg.Algorithm = sha1.New
	}

	return &Mapper{
		secret:    cfg.Secret,
		period:    int64(cfg.Period),
		digits:    int(cfg.Digits),
		algorithm: cfg.Algorithm,
	}, nil
}

// NewGoogleAuthenticator creates a mapper from an authenticator-app
// secret: ASCII spaces are stripped and the text upper-cased before
// RFC 4648 base32 decoding, with or without trailing padding. The
// decoded bytes feed a plain Mapper with default period and digits.
func NewGoogleAuthenticator(secret string) (*Mapper, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(secret, " ", ""))
	normalized = strings.TrimRight(normalized, "=")

	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSecretDecode, err)
	}

	return NewMapper(Config{Secret: raw})
}

// Window derives the code triple for the time step containing at and
// its two neighbors.
func (m *Mapper) Window(at time.Time) (Window, error) {
	return GenerateWindow(m.secret, at, m.period, m.digits, m.algorithm)
}

// Code derives the code for the time step containing at.
func (m *Mapper) Code(at time.Time) (string, error) {
	if m.period <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidPeriod, m.period)
	}
	return hotp.Generate(m.secret, uint64(at.Unix()/m.period), m.digits, hotp.Dynamic(), m.algorithm)
}

// GenerateWindow derives the codes for the time step containing at and
// its immediate neighbors, ordered previous, current, next.
//
// The moving factor is floor(unixSeconds / period). At the time origin
// the previous window has moving factor -1, which is encoded into the
// same fixed-width big-endian counter bytes via two's-complement
// wraparound, matching the RFC reference behavior.
func GenerateWindow(secret []byte, at time.Time, period int64, digits int, algorithm func() hash.Hash) (Window, error) {
	if period <= 0 {
		return Window{}, fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}

	counter := at.Unix() / period

	previous, err := hotp.Generate(secret, uint64(counter-1), digits, hotp.Dynamic(), algorithm)
	if err != nil {
		return Window{}, err
	}
	current, err := hotp.Generate(secret, uint64(counter), digits, hotp.Dynamic(), algorithm)
	if err != nil {
		return Window{}, err
	}
	next, err := hotp.Generate(secret, uint64(counter+1), digits, hotp.Dynamic(), algorithm)
	if err != nil {
		return Window{}, err
	}

	return Window{Previous: previous, Current: current, Next: next}, nil
}
