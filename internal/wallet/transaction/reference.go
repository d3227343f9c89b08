package transaction

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
)

// ReferenceInfo binds a transaction to a recent block and bounds its lifetime.
// It is supplied by the node collaborator and used verbatim.
type ReferenceInfo struct {
	RefBlockNum    uint16
	RefBlockPrefix uint32
	Expiration     time.Time
}

// ParseReferenceInfo parses the node's "<ref_block_num>,<ref_block_prefix>" text
// and attaches the given expiration.
func ParseReferenceInfo(s string, expiration time.Time) (ReferenceInfo, error) {
	numText, prefixText, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return ReferenceInfo{}, errors.Wrapf(errs.ErrFormat, "reference info %q is not <num>,<prefix>", s)
	}

	num, err := strconv.ParseUint(strings.TrimSpace(numText), 10, 16)
	if err != nil {
		return ReferenceInfo{}, errors.Wrapf(errs.ErrFormat, "reference info %q has invalid ref_block_num", s)
	}
	prefix, err := strconv.ParseUint(strings.TrimSpace(prefixText), 10, 32)
	if err != nil {
		return ReferenceInfo{}, errors.Wrapf(errs.ErrFormat, "reference info %q has invalid ref_block_prefix", s)
	}

	return ReferenceInfo{
		RefBlockNum:    uint16(num),
		RefBlockPrefix: uint32(prefix),
		Expiration:     expiration,
	}, nil
}

func (r ReferenceInfo) String() string {
	return strconv.FormatUint(uint64(r.RefBlockNum), 10) + "," + strconv.FormatUint(uint64(r.RefBlockPrefix), 10)
}

// expirationSeconds returns the expiration as seconds since the unix epoch.
func (r ReferenceInfo) expirationSeconds() (uint32, error) {
	if r.Expiration.IsZero() {
		return 0, errors.Wrap(errs.ErrTransaction, "expiration is required")
	}

	secs := r.Expiration.Unix()
	if secs < 0 || secs > math.MaxUint32 {
		return 0, errors.Wrapf(errs.ErrTransaction, "expiration %s is outside the protocol range", r.Expiration.UTC())
	}

	return uint32(secs), nil
}
