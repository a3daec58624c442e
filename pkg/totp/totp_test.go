package totp

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-otp/pkg/hotp"
)

// RFC 6238 Appendix B test secrets. The reference vectors use a
// digest-sized seed per algorithm.
var (
	seedSHA1   = []byte("12345678901234567890")
	seedSHA256 = []byte("12345678901234567890123456789012")
	seedSHA512 = []byte("1234567890123456789012345678901234567890123456789012345678901234")
)

func TestCode_RFC6238Vectors(t *testing.T) {
	tests := []struct {
		name      string
		secret    []byte
		algorithm func() hash.Hash
		unixTime  int64
		want      string
	}{
		{"SHA1 t=59", seedSHA1, nil, 59, "94287082"},
		{"SHA1 t=1111111109", seedSHA1, nil, 1111111109, "07081804"},
		{"SHA1 t=1111111111", seedSHA1, nil, 1111111111, "14050471"},
		{"SHA1 t=1234567890", seedSHA1, nil, 1234567890, "89005924"},
		{"SHA1 t=2000000000", seedSHA1, nil, 2000000000, "69279037"},
		{"SHA1 t=20000000000", seedSHA1, nil, 20000000000, "65353130"},
		{"SHA256 t=59", seedSHA256, sha256.New, 59, "46119246"},
		{"SHA256 t=1111111109", seedSHA256, sha256.New, 1111111109, "68084774"},
		{"SHA256 t=20000000000", seedSHA256, sha256.New, 20000000000, "77737706"},
		{"SHA512 t=59", seedSHA512, sha512.New, 59, "90693936"},
		{"SHA512 t=1111111109", seedSHA512, sha512.New, 1111111109, "25091201"},
		{"SHA512 t=20000000000", seedSHA512, sha512.New, 20000000000, "47863826"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapper, err := NewMapper(Config{
				Secret:    tt.secret,
				Digits:    8,
				Algorithm: tt.algorithm,
			})
			require.NoError(t, err)

			code, err := mapper.Code(time.Unix(tt.unixTime, 0).UTC())
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestWindow_OrderAndNeighbors(t *testing.T) {
	mapper, err := NewMapper(Config{Secret: seedSHA1})
	require.NoError(t, err)

	at := time.Unix(1234567890, 0).UTC()
	window, err := mapper.Window(at)
	require.NoError(t, err)

	counter := at.Unix() / DefaultPeriod
	for i, want := range []int64{counter - 1, counter, counter + 1} {
		expected, err := hotp.Generate(seedSHA1, uint64(want), DefaultDigits, hotp.Dynamic(), nil)
		require.NoError(t, err)
		assert.Equal(t, expected, window.Codes()[i], "window element %d", i)
	}

	assert.Equal(t, window.Previous, window.Codes()[0])
	assert.Equal(t, window.Current, window.Codes()[1])
	assert.Equal(t, window.Next, window.Codes()[2])
}

// TestWindow_TimeOriginBoundary verifies the moving factor -1 at the
// time origin: the previous window wraps to the all-ones 64-bit
// counter instead of erroring.
func TestWindow_TimeOriginBoundary(t *testing.T) {
	mapper, err := NewMapper(Config{Secret: seedSHA1})
	require.NoError(t, err)

	window, err := mapper.Window(time.Unix(0, 0).UTC())
	require.NoError(t, err)

	// Counter 0 is the first RFC 4226 Appendix D vector.
	assert.Equal(t, "755224", window.Current)

	wrapped, err := hotp.Generate(seedSHA1, ^uint64(0), DefaultDigits, hotp.Dynamic(), nil)
	require.NoError(t, err)
	assert.Equal(t, wrapped, window.Previous)

	next, err := hotp.Generate(seedSHA1, 1, DefaultDigits, hotp.Dynamic(), nil)
	require.NoError(t, err)
	assert.Equal(t, next, window.Next)
}

func TestGenerateWindow_InvalidPeriod(t *testing.T) {
	for _, period := range []int64{0, -30} {
		_, err := GenerateWindow(seedSHA1, time.Unix(59, 0), period, 6, nil)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "period %d", period)
	}
}

func TestGenerateWindow_InvalidDigits(t *testing.T) {
	_, err := GenerateWindow(seedSHA1, time.Unix(59, 0), 30, 0, nil)
	assert.ErrorIs(t, err, hotp.ErrInvalidDigits)
}

func TestNewMapper_Defaults(t *testing.T) {
	mapper, err := NewMapper(Config{Secret: seedSHA1})
	require.NoError(t, err)

	assert.EqualValues(t, DefaultPeriod, mapper.period)
	assert.EqualValues(t, DefaultDigits, mapper.digits)

	code, err := mapper.Code(time.Unix(59, 0).UTC())
	require.NoError(t, err)
	assert.Len(t, code, DefaultDigits)
}

func TestNewMapper_EmptySecret(t *testing.T) {
	_, err := NewMapper(Config{})
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestWindow_PeriodAffectsCounter(t *testing.T) {
	at := time.Unix(59, 0).UTC()

	short, err := NewMapper(Config{Secret: seedSHA1, Period: 30})
	require.NoError(t, err)
	long, err := NewMapper(Config{Secret: seedSHA1, Period: 60})
	require.NoError(t, err)

	// 59/30 = 1 but 59/60 = 0, so the moving factors differ.
	shortCode, err := short.Code(at)
	require.NoError(t, err)
	longCode, err := long.Code(at)
	require.NoError(t, err)
	assert.NotEqual(t, shortCode, longCode)
}

func TestNewGoogleAuthenticator(t *testing.T) {
	// Base32 of the raw ASCII secret "12345678901234567890".
	const encoded = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

	tests := []struct {
		name   string
		secret string
	}{
		{"canonical", encoded},
		{"lower case", "gezdgnbvgy3tqojqgezdgnbvgy3tqojq"},
		{"embedded spaces", "GEZD GNBV GY3T QOJQ GEZD GNBV GY3T QOJQ"},
	}

	raw, err := NewMapper(Config{Secret: seedSHA1})
	require.NoError(t, err)

	at := time.Unix(1111111109, 0).UTC()
	expected, err := raw.Window(at)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapper, err := NewGoogleAuthenticator(tt.secret)
			require.NoError(t, err)

			window, err := mapper.Window(at)
			require.NoError(t, err)
			assert.Equal(t, expected, window)
		})
	}
}

func TestNewGoogleAuthenticator_DecodeError(t *testing.T) {
	_, err := NewGoogleAuthenticator("not!base32")
	assert.ErrorIs(t, err, ErrSecretDecode)
}

func TestWindow_Contains(t *testing.T) {
	window := Window{Previous: "111111", Current: "222222", Next: "333333"}

	assert.True(t, window.Contains("111111"))
	assert.True(t, window.Contains("222222"))
	assert.True(t, window.Contains("333333"))
	assert.False(t, window.Contains("444444"))
	assert.False(t, window.Contains(""))
}
