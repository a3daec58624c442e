// Package totp maps wall-clock time onto the HOTP moving factor as
// defined by RFC 6238.
//
// A Mapper divides time into fixed-width steps (30 seconds by default)
// and derives the code for a step together with its two neighbors, so
// verifiers can tolerate one step of clock drift without synchronized
// clocks.
//
// # Basic Usage
//
//	mapper, err := totp.NewMapper(totp.Config{
//	    Secret: secret, // raw bytes, already decoded
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	window, err := mapper.Window(time.Now().UTC())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Membership test against the adjacent windows
//	if window.Contains(userCode) {
//	    // accepted
//	}
//
// # Authenticator App Secrets
//
// Authenticator apps exchange secrets as base32 text. The
// NewGoogleAuthenticator factory normalizes (strips spaces,
// upper-cases) and decodes the text before constructing a plain
// Mapper, so a base32-provisioned secret and its raw bytes produce
// identical codes:
//
//	mapper, err := totp.NewGoogleAuthenticator("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ")
//
// # Time-based Testing
//
// Every operation takes an explicit instant, so codes for fixed points
// in time are reproducible in tests:
//
//	code, err := mapper.Code(time.Unix(59, 0).UTC())
//
// # Thread Safety
//
// A Mapper is immutable after construction; all methods are safe for
// concurrent use.
package totp
