// Package keys handles secp256k1 key material: generation, public key
// derivation, WIF import/export and the prefixed public key text form.
//
// Private keys are ephemeral. Callers own a PrivateKey for the duration of a
// single operation and must call Zero once done with it.
package keys

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
)

// PrivateKeySize is the length of a serialized private key scalar.
const PrivateKeySize = 32

// PrivateKey is a secp256k1 scalar in [1, n-1].
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// Generate draws a new private key uniformly from [1, n-1] using crypto/rand.
func Generate() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, errors.Wrapf(errs.ErrCrypto, "failed to generate private key: %v", err)
	}

	return &PrivateKey{key: key}, nil
}

// FromBytes parses a 32-byte big-endian scalar. Zero and values >= n are rejected.
func FromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, errors.Wrapf(errs.ErrCrypto, "invalid private key length %d, expected %d", len(b), PrivateKeySize)
	}

	var scalar secp256k1.ModNScalar
	defer scalar.Zero()
	if overflow := scalar.SetByteSlice(b); overflow {
		return nil, errors.Wrap(errs.ErrCrypto, "private key is not below the curve order")
	}
	if scalar.IsZero() {
		return nil, errors.Wrap(errs.ErrCrypto, "private key is zero")
	}

	return &PrivateKey{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

// Bytes returns the 32-byte big-endian scalar. The caller must wipe the result.
func (k *PrivateKey) Bytes() []byte {
	return k.key.Serialize()
}

// PublicKey derives the public key by scalar multiplication with the base point.
func (k *PrivateKey) PublicKey() PublicKey {
	var pub PublicKey
	copy(pub[:], k.key.PubKey().SerializeCompressed())
	return pub
}

// Secp256k1 exposes the underlying key for signing.
func (k *PrivateKey) Secp256k1() *secp256k1.PrivateKey {
	return k.key
}

// Zero wipes the scalar. The key is unusable afterwards.
func (k *PrivateKey) Zero() {
	if k == nil || k.key == nil {
		return
	}
	k.key.Zero()
}
