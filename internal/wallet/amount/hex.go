package amount

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
)

// ParseHex decodes a hex string without prefix.
func ParseHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errors.Wrapf(errs.ErrFormat, "hex string has odd length %d", len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrFormat, "invalid hex string: %v", err)
	}

	return b, nil
}

// FormatHex encodes b as lowercase hex without prefix.
func FormatHex(b []byte) string {
	return hex.EncodeToString(b)
}
