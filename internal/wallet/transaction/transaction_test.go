package transaction_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-xwc/internal/util/jsonx"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/operation"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

const prefix = "XWC"

var expiration = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func transferOp(t *testing.T) *operation.Transfer {
	t.Helper()

	b := make([]byte, keys.PrivateKeySize)
	b[len(b)-1] = 1
	k, err := keys.FromBytes(b)
	require.NoError(t, err)
	addr := address.FromPublicKey(k.PublicKey(), address.VersionNormal, prefix)

	xwc, err := amount.NewAsset("1.3.0", 5)
	require.NoError(t, err)
	fee, err := xwc.NewAmount("0.0011")
	require.NoError(t, err)
	value, err := xwc.NewAmount("0.001")
	require.NoError(t, err)

	return &operation.Transfer{Fee: fee, From: addr, To: addr, Amount: value}
}

func reference() transaction.ReferenceInfo {
	return transaction.ReferenceInfo{RefBlockNum: 0x1234, RefBlockPrefix: 0xdeadbeef, Expiration: expiration}
}

func TestAssembleLayout(t *testing.T) {
	op := transferOp(t)

	got, err := transaction.Assemble(reference(), []operation.Operation{op}, nil)
	require.NoError(t, err)

	body, err := operation.Encode(op)
	require.NoError(t, err)

	exp := uint32(expiration.Unix())
	var want []byte
	want = append(want, 0x34, 0x12)
	want = append(want, 0xef, 0xbe, 0xad, 0xde)
	want = append(want, byte(exp), byte(exp>>8), byte(exp>>16), byte(exp>>24))
	want = append(want, 0x01)
	want = append(want, body...)
	want = append(want, 0x00)

	assert.Equal(t, want, got)
}

func TestAssembleIsDeterministic(t *testing.T) {
	ops := []operation.Operation{transferOp(t), transferOp(t)}
	exts := []operation.Extension{{Tag: 1, Data: []byte("x")}}

	a, err := transaction.Assemble(reference(), ops, exts)
	require.NoError(t, err)
	b, err := transaction.Assemble(reference(), ops, exts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, bytes.HasSuffix(a, []byte{0x01, 0x01, 0x01, 'x'}))
}

func TestAssembleRejects(t *testing.T) {
	_, err := transaction.Assemble(reference(), nil, nil)
	assert.ErrorIs(t, err, errs.ErrTransaction)

	ops := []operation.Operation{transferOp(t)}

	noExpiration := reference()
	noExpiration.Expiration = time.Time{}
	_, err = transaction.Assemble(noExpiration, ops, nil)
	assert.ErrorIs(t, err, errs.ErrTransaction)

	beforeEpoch := reference()
	beforeEpoch.Expiration = time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = transaction.Assemble(beforeEpoch, ops, nil)
	assert.ErrorIs(t, err, errs.ErrTransaction)

	tooLate := reference()
	tooLate.Expiration = time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = transaction.Assemble(tooLate, ops, nil)
	assert.ErrorIs(t, err, errs.ErrTransaction)
}

type unknownOperation struct{}

func (unknownOperation) Tag() operation.Tag { return 3 }
func (unknownOperation) Validate() error    { return nil }

func TestAssembleUnsupportedOperation(t *testing.T) {
	got, err := transaction.Assemble(reference(), []operation.Operation{transferOp(t), unknownOperation{}}, nil)
	assert.ErrorIs(t, err, errs.ErrUnsupportedOperation)
	assert.Nil(t, got)

	tx, err := transaction.New(reference(), []operation.Operation{unknownOperation{}}, nil)
	assert.ErrorIs(t, err, errs.ErrUnsupportedOperation)
	assert.Nil(t, tx)
}

func TestParseReferenceInfo(t *testing.T) {
	ref, err := transaction.ParseReferenceInfo("4660, 3735928559", expiration)
	require.NoError(t, err)
	assert.Equal(t, reference(), ref)
	assert.Equal(t, "4660,3735928559", ref.String())

	for _, s := range []string{"", "1", "a,1", "1,b", "70000,1", "1,5000000000", "-1,1"} {
		_, err := transaction.ParseReferenceInfo(s, expiration)
		assert.ErrorIs(t, err, errs.ErrFormat, s)
	}
}

func TestTransactionBytesAndID(t *testing.T) {
	tx, err := transaction.New(reference(), []operation.Operation{transferOp(t)}, nil)
	require.NoError(t, err)
	assert.Empty(t, tx.Signatures)
	assert.Equal(t, reference(), tx.Reference())

	unsigned, err := tx.UnsignedBytes()
	require.NoError(t, err)

	signed, err := tx.Bytes()
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte(nil), unsigned...), 0x00), signed)

	var sig transaction.Signature
	sig[0] = 0x20
	sig[64] = 0xff
	tx.Signatures = append(tx.Signatures, sig)

	signed, err = tx.Bytes()
	require.NoError(t, err)
	require.Len(t, signed, len(unsigned)+1+transaction.SignatureSize)
	assert.Equal(t, byte(0x01), signed[len(unsigned)])
	assert.Equal(t, sig[:], signed[len(unsigned)+1:])

	digest := sha256.Sum256(unsigned)
	id, err := tx.ID()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(digest[:20]), id)
	assert.Len(t, id, 40)
}

func TestTransactionJSON(t *testing.T) {
	tx, err := transaction.New(reference(), []operation.Operation{transferOp(t)}, nil)
	require.NoError(t, err)

	var sig transaction.Signature
	sig[0] = 0x1f
	tx.Signatures = append(tx.Signatures, sig)

	raw, err := tx.MarshalJSONWithPrefix(prefix)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, jsonx.Unmarshal(raw, &decoded))

	assert.Equal(t, float64(0x1234), decoded["ref_block_num"])
	assert.Equal(t, float64(0xdeadbeef), decoded["ref_block_prefix"])
	assert.Equal(t, "2024-01-02T03:04:05", decoded["expiration"])
	assert.Equal(t, []any{}, decoded["extensions"])

	ops, ok := decoded["operations"].([]any)
	require.True(t, ok)
	require.Len(t, ops, 1)
	pair, ok := ops[0].([]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), pair[0])

	sigs, ok := decoded["signatures"].([]any)
	require.True(t, ok)
	require.Len(t, sigs, 1)
	assert.Equal(t, "1f"+string(bytes.Repeat([]byte("0"), 128)), sigs[0])

	parsed, err := transaction.ParseExpiration("2024-01-02T03:04:05")
	require.NoError(t, err)
	assert.True(t, expiration.Equal(parsed))
}
