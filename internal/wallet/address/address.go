// Package address derives and parses prefixed Base58Check account and
// contract addresses.
package address

import (
	"bytes"
	"crypto/sha512"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/keys"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // protocol-mandated hash
)

const (
	// PayloadSize is the length of the public key hash.
	PayloadSize = 20
	// Size is the length of the raw version ‖ payload form used on the wire.
	Size = 1 + PayloadSize

	checksumSize = 4
)

// Version selects the address kind.
type Version byte

const (
	VersionNormal   Version = 0x35
	VersionMultisig Version = 0x32
	VersionContract Version = 0x1c
)

func (v Version) String() string {
	switch v {
	case VersionNormal:
		return "normal"
	case VersionMultisig:
		return "multisig"
	case VersionContract:
		return "contract"
	default:
		return "unknown"
	}
}

// Address is a version byte plus a 20-byte hash, rendered with a chain prefix.
type Address struct {
	Version Version
	Payload [PayloadSize]byte
	Prefix  string
}

// FromPublicKey derives the address RIPEMD160(SHA512(pub)) for the given version.
func FromPublicKey(pub keys.PublicKey, version Version, prefix string) Address {
	return Address{Version: version, Payload: PayloadHash(pub[:]), Prefix: prefix}
}

// Parse decodes prefix + base58(version ‖ payload ‖ checksum) and verifies the checksum.
func Parse(s string, prefix string) (Address, error) {
	if !strings.HasPrefix(s, prefix) {
		return Address{}, errors.Wrapf(errs.ErrFormat, "address %q does not start with prefix %q", s, prefix)
	}

	raw, err := base58.Decode(s[len(prefix):])
	if err != nil {
		return Address{}, errors.Wrapf(errs.ErrFormat, "address %q is not valid base58", s)
	}
	if len(raw) != Size+checksumSize {
		return Address{}, errors.Wrapf(errs.ErrFormat, "address %q has invalid length %d", s, len(raw))
	}

	body, checksum := raw[:Size], raw[Size:]
	if !bytes.Equal(addressChecksum(body), checksum) {
		return Address{}, errors.Wrapf(errs.ErrFormat, "address %q checksum mismatch", s)
	}

	addr := Address{Version: Version(body[0]), Prefix: prefix}
	copy(addr.Payload[:], body[1:])

	return addr, nil
}

// ParseVersion parses s and requires the given version.
func ParseVersion(s string, prefix string, version Version) (Address, error) {
	addr, err := Parse(s, prefix)
	if err != nil {
		return Address{}, err
	}
	if addr.Version != version {
		return Address{}, errors.Wrapf(errs.ErrFormat, "address %q is a %s address, expected %s", s, addr.Version, version)
	}
	return addr, nil
}

// Bytes returns version ‖ payload.
func (a Address) Bytes() []byte {
	b := make([]byte, 0, Size)
	b = append(b, byte(a.Version))
	return append(b, a.Payload[:]...)
}

func (a Address) String() string {
	body := a.Bytes()
	return a.Prefix + base58.Encode(append(body, addressChecksum(body)...))
}

// Equal compares version and payload; the display prefix is ignored.
func (a Address) Equal(other Address) bool {
	return a.Version == other.Version && a.Payload == other.Payload
}

// PayloadHash returns RIPEMD160(SHA512(b)).
func PayloadHash(b []byte) [PayloadSize]byte {
	sha := sha512.Sum512(b)

	var out [PayloadSize]byte
	copy(out[:], ripemd(sha[:]))
	return out
}

// addressChecksum returns the first four bytes of RIPEMD160(body).
func addressChecksum(body []byte) []byte {
	return ripemd(body)[:checksumSize]
}

func ripemd(b []byte) []byte {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)
}
