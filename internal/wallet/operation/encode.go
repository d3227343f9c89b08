package operation

import (
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/serializer"
)

const encodedSizeHint = 256

// Encode returns tag varint ‖ body for a supported operation. Unsupported
// operations fail with errs.ErrUnsupportedOperation and return no bytes.
func Encode(op Operation) ([]byte, error) {
	w := serializer.NewWriter(encodedSizeHint)
	if err := EncodeTo(w, op); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeTo appends the encoded operation to w. Nothing is written on error.
func EncodeTo(w *serializer.Writer, op Operation) error {
	switch o := op.(type) {
	case *Transfer:
		if err := o.Validate(); err != nil {
			return err
		}
		w.WriteVarint(uint64(TagTransfer))
		o.encodeBody(w)
	case *ContractInvoke:
		if err := o.Validate(); err != nil {
			return err
		}
		w.WriteVarint(uint64(TagContractInvoke))
		o.encodeBody(w)
	case *ContractTransfer:
		if err := o.Validate(); err != nil {
			return err
		}
		w.WriteVarint(uint64(TagContractTransfer))
		o.encodeBody(w)
	case nil:
		return errors.Wrap(errs.ErrUnsupportedOperation, "nil operation")
	default:
		return errors.Wrapf(errs.ErrUnsupportedOperation, "operation %T with tag %d", op, op.Tag())
	}
	return nil
}

func (op *Transfer) encodeBody(w *serializer.Writer) {
	writeAsset(w, op.Fee)
	writeAddress(w, op.From)
	writeAddress(w, op.To)
	writeAsset(w, op.Amount)
	w.WriteBool(op.Memo != nil)
	if op.Memo != nil {
		writeMemo(w, op.Memo)
	}
	writeExtensions(w, op.Extensions)
}

func (op *ContractInvoke) encodeBody(w *serializer.Writer) {
	writeAsset(w, op.Fee)
	w.WriteUint64(op.GasLimit)
	w.WriteUint64(op.GasPrice)
	writeAddress(w, op.CallerAddr)
	writePublicKey(w, op.CallerPubKey)
	writeAddress(w, op.ContractID)
	w.WriteString(op.API)
	w.WriteString(op.Args)
	writeExtensions(w, op.Extensions)
}

func (op *ContractTransfer) encodeBody(w *serializer.Writer) {
	writeAsset(w, op.Fee)
	w.WriteUint64(op.GasLimit)
	w.WriteUint64(op.GasPrice)
	writeAddress(w, op.CallerAddr)
	writePublicKey(w, op.CallerPubKey)
	writeAddress(w, op.ContractID)
	writeAsset(w, op.Amount)
	w.WriteString(op.Memo)
	writeExtensions(w, op.Extensions)
}

// writeAsset writes amount uint64 LE ‖ asset instance varint.
func writeAsset(w *serializer.Writer, a amount.AssetAmount) {
	w.WriteUint64(a.Amount)
	w.WriteVarint(a.AssetID.Instance)
}

func writeAddress(w *serializer.Writer, a address.Address) {
	w.WriteBytes(a.Bytes())
}

func writePublicKey(w *serializer.Writer, p keys.PublicKey) {
	w.WriteBytes(p[:])
}

// WriteExtensions writes varint count ‖ each {tag varint, varint len, data}.
func WriteExtensions(w *serializer.Writer, exts []Extension) {
	writeExtensions(w, exts)
}

func writeExtensions(w *serializer.Writer, exts []Extension) {
	w.WriteVarint(uint64(len(exts)))
	for _, ext := range exts {
		w.WriteVarint(ext.Tag)
		w.WriteBytes(ext.Data)
	}
}
