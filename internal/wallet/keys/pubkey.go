package keys

import (
	"bytes"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // protocol-mandated hash
)

// PublicKeySize is the length of a compressed SEC public key.
const PublicKeySize = 33

const pubKeyChecksumSize = 4

// PublicKey is a compressed secp256k1 public key. The all-zero value stands
// for "no key" (used by plaintext memos).
type PublicKey [PublicKeySize]byte

// PublicKeyFromBytes validates a compressed or uncompressed SEC encoding and
// returns its compressed form.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	key, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return PublicKey{}, errors.Wrapf(errs.ErrCrypto, "invalid public key: %v", err)
	}

	var pub PublicKey
	copy(pub[:], key.SerializeCompressed())
	return pub, nil
}

// ParsePublicKey decodes the text form prefix + base58(key ‖ RIPEMD160(key)[:4]).
func ParsePublicKey(s string, prefix string) (PublicKey, error) {
	if !strings.HasPrefix(s, prefix) {
		return PublicKey{}, errors.Wrapf(errs.ErrFormat, "public key %q does not start with prefix %q", s, prefix)
	}

	raw, err := base58.Decode(s[len(prefix):])
	if err != nil {
		return PublicKey{}, errors.Wrapf(errs.ErrFormat, "public key %q is not valid base58", s)
	}
	if len(raw) != PublicKeySize+pubKeyChecksumSize {
		return PublicKey{}, errors.Wrapf(errs.ErrFormat, "public key %q has invalid length %d", s, len(raw))
	}

	body, checksum := raw[:PublicKeySize], raw[PublicKeySize:]
	if !bytes.Equal(pubKeyChecksum(body), checksum) {
		return PublicKey{}, errors.Wrapf(errs.ErrFormat, "public key %q checksum mismatch", s)
	}

	pub, err := PublicKeyFromBytes(body)
	if err != nil {
		return PublicKey{}, errors.Wrapf(errs.ErrFormat, "public key %q is not a curve point", s)
	}

	return pub, nil
}

// String renders the key with the given chain prefix.
func (p PublicKey) String(prefix string) string {
	raw := make([]byte, 0, PublicKeySize+pubKeyChecksumSize)
	raw = append(raw, p[:]...)
	raw = append(raw, pubKeyChecksum(p[:])...)
	return prefix + base58.Encode(raw)
}

func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

// Secp256k1 parses the key into a curve point.
func (p PublicKey) Secp256k1() (*secp256k1.PublicKey, error) {
	key, err := secp256k1.ParsePubKey(p[:])
	if err != nil {
		return nil, errors.Wrapf(errs.ErrCrypto, "invalid public key: %v", err)
	}
	return key, nil
}

func pubKeyChecksum(b []byte) []byte {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)[:pubKeyChecksumSize]
}
