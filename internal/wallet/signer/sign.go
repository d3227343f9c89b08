package signer

import (
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

// Sign decodes each WIF, signs tx for chainID and appends the signatures in
// the order the keys were given. Decoded keys are wiped before returning.
// Either every key signs or tx is left untouched.
func Sign(tx *transaction.Transaction, chainID []byte, wifs ...string) error {
	if len(wifs) == 0 {
		return errors.Wrap(errs.ErrCrypto, "at least one private key is required")
	}

	decoded := make([]*keys.PrivateKey, 0, len(wifs))
	defer func() {
		for _, k := range decoded {
			k.Zero()
		}
	}()

	for i, wif := range wifs {
		w, err := keys.DecodeWIF(wif)
		if err != nil {
			return errors.Wrapf(err, "key %d", i)
		}
		decoded = append(decoded, w.Key)
	}

	return SignWithKeys(tx, chainID, decoded...)
}

// SignWithKeys is Sign for already decoded keys. The caller keeps ownership
// of the keys and is responsible for wiping them.
func SignWithKeys(tx *transaction.Transaction, chainID []byte, signers ...*keys.PrivateKey) error {
	if tx == nil {
		return errors.Wrap(errs.ErrTransaction, "transaction is required")
	}
	if len(chainID) != ChainIDSize {
		return errors.Wrapf(errs.ErrTransaction, "invalid chain id length %d, expected %d", len(chainID), ChainIDSize)
	}
	if len(signers) == 0 {
		return errors.Wrap(errs.ErrCrypto, "at least one private key is required")
	}

	unsigned, err := tx.UnsignedBytes()
	if err != nil {
		return err
	}
	digest := Digest(chainID, unsigned)

	sigs := make([]transaction.Signature, 0, len(signers))
	for i, k := range signers {
		sig, err := SignDigest(k, digest)
		if err != nil {
			return errors.Wrapf(err, "key %d", i)
		}
		sigs = append(sigs, sig)
	}

	tx.Signatures = append(tx.Signatures, sigs...)

	return nil
}

// VerifyTransaction checks that tx carries one valid signature per public key,
// in order.
func VerifyTransaction(tx *transaction.Transaction, chainID []byte, pubs ...keys.PublicKey) error {
	if len(tx.Signatures) != len(pubs) {
		return errors.Wrapf(errs.ErrCrypto, "transaction has %d signatures, expected %d", len(tx.Signatures), len(pubs))
	}

	unsigned, err := tx.UnsignedBytes()
	if err != nil {
		return err
	}
	digest := Digest(chainID, unsigned)

	for i, pub := range pubs {
		if !Verify(pub, digest, tx.Signatures[i]) {
			return errors.Wrapf(errs.ErrCrypto, "signature %d does not verify", i)
		}
	}

	return nil
}
