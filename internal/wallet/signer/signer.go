// Package signer produces the compact recoverable signatures the chain accepts.
//
// The digest binds the chain id to the unsigned transaction bytes so a
// signature made for one network cannot be replayed on another.
package signer

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

// ChainIDSize is the length of a chain identifier.
const ChainIDSize = 32

const (
	// recovery byte = 27 + 4 (compressed public key) + recovery id
	compactMagic          = 27
	compactCompressedFlag = 4
	scalarSize            = 32

	maxSignAttempts = 64
)

// Digest returns SHA256(chainID ‖ unsigned).
func Digest(chainID []byte, unsigned []byte) [sha256.Size]byte {
	h := sha256.New()
	h.Write(chainID)
	h.Write(unsigned)

	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// SignDigest signs digest with a deterministic (RFC6979) low-S ECDSA
// signature and encodes it as recovery byte ‖ r ‖ s. Nonces that yield a
// non-canonical encoding are skipped in favor of the next RFC6979 candidate.
func SignDigest(key *keys.PrivateKey, digest [sha256.Size]byte) (transaction.Signature, error) {
	if key == nil || key.Secp256k1() == nil {
		return transaction.Signature{}, errors.Wrap(errs.ErrCrypto, "private key is required")
	}

	priv := key.Secp256k1()
	keyBytes := priv.Key.Bytes()
	defer clear(keyBytes[:])

	for attempt := uint32(0); attempt < maxSignAttempts; attempt++ {
		sig, ok := signWithNonce(&priv.Key, keyBytes[:], digest, attempt)
		if !ok || !IsCanonical(sig) {
			continue
		}

		pub, err := Recover(digest, sig)
		if err != nil {
			return transaction.Signature{}, err
		}
		if pub != key.PublicKey() {
			return transaction.Signature{}, errors.Wrap(errs.ErrCrypto, "recovery id does not reproduce the signer's public key")
		}
		return sig, nil
	}

	return transaction.Signature{}, errors.Wrapf(errs.ErrCrypto, "no canonical signature within %d attempts", maxSignAttempts)
}

// signWithNonce signs with the attempt-th valid RFC6979 nonce. Attempt 0
// matches ecdsa.Sign.
func signWithNonce(d *secp256k1.ModNScalar, keyBytes []byte, digest [sha256.Size]byte, attempt uint32) (transaction.Signature, bool) {
	var out transaction.Signature

	k := secp256k1.NonceRFC6979(keyBytes, digest[:], nil, nil, attempt)
	defer k.Zero()

	var kG secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &kG)
	kG.ToAffine()

	var r secp256k1.ModNScalar
	overflow := r.SetBytes(kG.X.Bytes())
	if r.IsZero() {
		return out, false
	}
	recID := byte(overflow<<1 | kG.Y.IsOddBit())

	var e secp256k1.ModNScalar
	e.SetByteSlice(digest[:])

	kinv := new(secp256k1.ModNScalar).InverseValNonConst(k)
	s := new(secp256k1.ModNScalar).Mul2(d, &r).Add(&e).Mul(kinv)
	if s.IsZero() {
		return out, false
	}
	if s.IsOverHalfOrder() {
		s.Negate()
		recID ^= 1
	}

	out[0] = compactMagic + compactCompressedFlag + recID
	r.PutBytesUnchecked(out[1 : 1+scalarSize])
	s.PutBytesUnchecked(out[1+scalarSize:])
	return out, true
}

// IsCanonical reports whether r and s both encode as minimal positive DER
// integers of exactly 32 bytes: the top bit is clear and a leading zero byte
// is only present when the next byte has its top bit set.
func IsCanonical(sig transaction.Signature) bool {
	return canonicalScalar(sig[1:1+scalarSize]) && canonicalScalar(sig[1+scalarSize:])
}

func canonicalScalar(b []byte) bool {
	if b[0]&0x80 != 0 {
		return false
	}
	return b[0] != 0 || b[1]&0x80 != 0
}

// Recover returns the compressed public key that produced sig over digest.
func Recover(digest [sha256.Size]byte, sig transaction.Signature) (keys.PublicKey, error) {
	pub, _, err := ecdsa.RecoverCompact(sig[:], digest[:])
	if err != nil {
		return keys.PublicKey{}, errors.Wrapf(errs.ErrCrypto, "failed to recover public key: %v", err)
	}

	return keys.PublicKeyFromBytes(pub.SerializeCompressed())
}

// Verify reports whether sig is a valid canonical low-S signature of digest by pub.
func Verify(pub keys.PublicKey, digest [sha256.Size]byte, sig transaction.Signature) bool {
	if !IsCanonical(sig) {
		return false
	}

	key, err := pub.Secp256k1()
	if err != nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[1 : 1+scalarSize]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[1+scalarSize:]); overflow || s.IsZero() || s.IsOverHalfOrder() {
		return false
	}

	return ecdsa.NewSignature(&r, &s).Verify(digest[:], key)
}
