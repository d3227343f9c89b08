// Package errs defines the error kinds surfaced by the wallet packages.
//
// Callers match kinds with errors.Is; the wrapped message names the field or
// operation that failed.
package errs

import "github.com/pkg/errors"

var (
	// ErrAmount is returned for invalid or overflowing decimal amounts.
	ErrAmount = errors.New("amount error")

	// ErrFormat is returned for malformed hex, base58 or checksummed text.
	ErrFormat = errors.New("format error")

	// ErrCrypto is returned for bad key material, WIF checksum mismatches,
	// signature recovery failures and unavailable randomness.
	ErrCrypto = errors.New("crypto error")

	// ErrUnsupportedOperation is returned when an operation variant cannot be encoded.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrTransaction is returned for invalid combinations of transaction-level parameters.
	ErrTransaction = errors.New("transaction error")
)
