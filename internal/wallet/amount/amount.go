package amount

import (
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
)

// MaxPrecision is the largest number of fractional digits an asset may declare.
const MaxPrecision = 18

// ToMinorUnits converts a decimal string to its integer minor-unit representation.
//
// The conversion is exact: amounts with more fractional digits than precision,
// negative amounts and amounts that do not fit in 64 bits are rejected.
func ToMinorUnits(decimal string, precision uint8) (uint64, error) {
	if precision > MaxPrecision {
		return 0, errors.Wrapf(errs.ErrAmount, "precision %d exceeds maximum %d", precision, MaxPrecision)
	}

	s := strings.TrimSpace(decimal)
	if s == "" {
		return 0, errors.Wrap(errs.ErrAmount, "empty amount")
	}
	if s[0] == '-' {
		return 0, errors.Wrapf(errs.ErrAmount, "negative amount %q", decimal)
	}
	s = strings.TrimPrefix(s, "+")

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, errors.Wrapf(errs.ErrAmount, "malformed amount %q", decimal)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, errors.Wrapf(errs.ErrAmount, "malformed amount %q", decimal)
	}
	if len(fracPart) > int(precision) {
		return 0, errors.Wrapf(errs.ErrAmount, "amount %q has %d fractional digits, asset precision is %d",
			decimal, len(fracPart), precision)
	}

	digits := intPart + fracPart + strings.Repeat("0", int(precision)-len(fracPart))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0, nil
	}

	// uint256 holds any 78 digit number; anything longer overflows for sure.
	const maxDigits = 78
	if len(digits) > maxDigits {
		return 0, errors.Wrapf(errs.ErrAmount, "amount %q overflows 64 bits", decimal)
	}

	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return 0, errors.Wrapf(errs.ErrAmount, "amount %q overflows 64 bits", decimal)
	}
	if !v.IsUint64() {
		return 0, errors.Wrapf(errs.ErrAmount, "amount %q overflows 64 bits", decimal)
	}

	return v.Uint64(), nil
}

// FromMinorUnits renders minor units as a canonical decimal string: no
// trailing fractional zeros and no trailing dot.
func FromMinorUnits(v uint64, precision uint8) string {
	digits := uint256.NewInt(v).Dec()
	if precision == 0 {
		return digits
	}

	p := int(precision)
	if len(digits) <= p {
		digits = strings.Repeat("0", p-len(digits)+1) + digits
	}

	intPart := digits[:len(digits)-p]
	fracPart := strings.TrimRight(digits[len(digits)-p:], "0")
	if fracPart == "" {
		return intPart
	}

	return intPart + "." + fracPart
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
