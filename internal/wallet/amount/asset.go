package amount

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
)

const (
	protocolSpace = 1
	assetType     = 3
)

// ObjectID is a "space.type.instance" chain object identifier, e.g. "1.3.0".
type ObjectID struct {
	Space    uint8
	Type     uint8
	Instance uint64
}

// ParseObjectID parses the dotted text form of an object id.
func ParseObjectID(s string) (ObjectID, error) {
	parts := strings.Split(s, ".")
	//nolint:mnd // object ids always have three components
	if len(parts) != 3 {
		return ObjectID{}, errors.Wrapf(errs.ErrFormat, "invalid object id %q", s)
	}

	space, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return ObjectID{}, errors.Wrapf(errs.ErrFormat, "invalid object id space in %q", s)
	}
	typ, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return ObjectID{}, errors.Wrapf(errs.ErrFormat, "invalid object id type in %q", s)
	}
	instance, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return ObjectID{}, errors.Wrapf(errs.ErrFormat, "invalid object id instance in %q", s)
	}

	return ObjectID{Space: uint8(space), Type: uint8(typ), Instance: instance}, nil
}

// ParseAssetID parses an object id and checks it names an asset (1.3.x).
func ParseAssetID(s string) (ObjectID, error) {
	id, err := ParseObjectID(s)
	if err != nil {
		return ObjectID{}, err
	}
	if !id.IsAsset() {
		return ObjectID{}, errors.Wrapf(errs.ErrFormat, "object id %s is not an asset id", s)
	}
	return id, nil
}

// IsAsset reports whether the id lives in the asset object space.
func (id ObjectID) IsAsset() bool {
	return id.Space == protocolSpace && id.Type == assetType
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Space, id.Type, id.Instance)
}

// Asset describes an asset id together with its precision.
type Asset struct {
	ID        ObjectID
	Precision uint8
}

// NewAsset validates id and precision.
func NewAsset(id string, precision uint8) (Asset, error) {
	assetID, err := ParseAssetID(id)
	if err != nil {
		return Asset{}, err
	}
	if precision > MaxPrecision {
		return Asset{}, errors.Wrapf(errs.ErrAmount, "precision %d exceeds maximum %d", precision, MaxPrecision)
	}
	return Asset{ID: assetID, Precision: precision}, nil
}

// NewAmount converts a decimal string in this asset into an AssetAmount.
func (a Asset) NewAmount(decimal string) (AssetAmount, error) {
	v, err := ToMinorUnits(decimal, a.Precision)
	if err != nil {
		return AssetAmount{}, errors.Wrapf(err, "asset %s", a.ID)
	}
	return AssetAmount{Amount: v, AssetID: a.ID}, nil
}

// Format renders minor units of this asset as a decimal string.
func (a Asset) Format(v uint64) string {
	return FromMinorUnits(v, a.Precision)
}

// AssetAmount is an integer minor-unit quantity of a specific asset.
type AssetAmount struct {
	Amount  uint64
	AssetID ObjectID
}
