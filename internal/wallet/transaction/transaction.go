// Package transaction assembles operations and reference data into the
// canonical unsigned transaction bytes and carries the signatures attached
// to them.
package transaction

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/operation"
	"github/chapool/go-xwc/internal/wallet/serializer"
)

// SignatureSize is the length of a compact recoverable signature: recovery byte ‖ r ‖ s.
const SignatureSize = 65

const (
	assembleSizeHint = 512
	idSize           = 20
)

// Signature is a compact recoverable secp256k1 signature.
type Signature [SignatureSize]byte

// Transaction is an ordered list of operations bound to reference data.
// Signatures stays empty until the transaction is signed.
type Transaction struct {
	RefBlockNum    uint16
	RefBlockPrefix uint32
	Expiration     time.Time
	Operations     []operation.Operation
	Extensions     []operation.Extension
	Signatures     []Signature
}

// Assemble encodes the unsigned transaction:
// ref_block_num u16 ‖ ref_block_prefix u32 ‖ expiration u32 ‖ varint(len ops) ‖ ops ‖ extensions.
// It is pure: identical inputs produce identical bytes.
func Assemble(ref ReferenceInfo, ops []operation.Operation, exts []operation.Extension) ([]byte, error) {
	if len(ops) == 0 {
		return nil, errors.Wrap(errs.ErrTransaction, "transaction has no operations")
	}

	expiration, err := ref.expirationSeconds()
	if err != nil {
		return nil, err
	}

	w := serializer.NewWriter(assembleSizeHint)
	w.WriteUint16(ref.RefBlockNum)
	w.WriteUint32(ref.RefBlockPrefix)
	w.WriteUint32(expiration)

	w.WriteVarint(uint64(len(ops)))
	for i, op := range ops {
		if err := operation.EncodeTo(w, op); err != nil {
			return nil, errors.Wrapf(err, "operation %d", i)
		}
	}

	operation.WriteExtensions(w, exts)

	return w.Bytes(), nil
}

// New validates the inputs by assembling them and returns an unsigned transaction.
func New(ref ReferenceInfo, ops []operation.Operation, exts []operation.Extension) (*Transaction, error) {
	if _, err := Assemble(ref, ops, exts); err != nil {
		return nil, err
	}

	return &Transaction{
		RefBlockNum:    ref.RefBlockNum,
		RefBlockPrefix: ref.RefBlockPrefix,
		Expiration:     ref.Expiration,
		Operations:     append([]operation.Operation(nil), ops...),
		Extensions:     append([]operation.Extension(nil), exts...),
	}, nil
}

// Reference returns the reference data the transaction was built with.
func (tx *Transaction) Reference() ReferenceInfo {
	return ReferenceInfo{
		RefBlockNum:    tx.RefBlockNum,
		RefBlockPrefix: tx.RefBlockPrefix,
		Expiration:     tx.Expiration,
	}
}

// UnsignedBytes returns the bytes that are signed.
func (tx *Transaction) UnsignedBytes() ([]byte, error) {
	return Assemble(tx.Reference(), tx.Operations, tx.Extensions)
}

// Bytes returns the signed encoding: unsigned bytes ‖ varint(len sigs) ‖ sigs.
func (tx *Transaction) Bytes() ([]byte, error) {
	unsigned, err := tx.UnsignedBytes()
	if err != nil {
		return nil, err
	}

	w := serializer.NewWriter(len(unsigned) + 1 + len(tx.Signatures)*SignatureSize)
	w.WriteRaw(unsigned)
	w.WriteVarint(uint64(len(tx.Signatures)))
	for _, sig := range tx.Signatures {
		w.WriteRaw(sig[:])
	}

	return w.Bytes(), nil
}

// ID returns the transaction id: the hex of the first 20 bytes of SHA256(unsigned bytes).
func (tx *Transaction) ID() (string, error) {
	unsigned, err := tx.UnsignedBytes()
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256(unsigned)
	return hex.EncodeToString(digest[:idSize]), nil
}
