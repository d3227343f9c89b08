package signer_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/operation"
	"github/chapool/go-xwc/internal/wallet/signer"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

const (
	prefix       = "XWC"
	networkByte  = 0x80
	referenceWIF = "5KatTfFZseaDsDf1d3JHCdBcUDdJZCLS2RwbEgoix1zyUMuHqVr"
)

var chainID = bytes.Repeat([]byte{0x11}, signer.ChainIDSize)

// transferTx builds a single transfer of 0.001 XWC with a 0.0011 fee from the
// key's own address to itself, bound to fixed reference data.
func transferTx(t *testing.T, k *keys.PrivateKey) *transaction.Transaction {
	t.Helper()

	addr := address.FromPublicKey(k.PublicKey(), address.VersionNormal, prefix)
	xwc, err := amount.NewAsset("1.3.0", 5)
	require.NoError(t, err)
	fee, err := xwc.NewAmount("0.0011")
	require.NoError(t, err)
	value, err := xwc.NewAmount("0.001")
	require.NoError(t, err)

	ref := transaction.ReferenceInfo{
		RefBlockNum:    4660,
		RefBlockPrefix: 3735928559,
		Expiration:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	tx, err := transaction.New(ref, []operation.Operation{&operation.Transfer{
		Fee:    fee,
		From:   addr,
		To:     addr,
		Amount: value,
		Memo:   operation.PlainMemo("test"),
	}}, nil)
	require.NoError(t, err)

	return tx
}

func referenceKey(t *testing.T) *keys.PrivateKey {
	t.Helper()
	k, err := keys.FromWIF(referenceWIF, networkByte)
	require.NoError(t, err)
	return k
}

func TestDigest(t *testing.T) {
	unsigned := []byte{0x01, 0x02, 0x03}
	want := sha256.Sum256(append(append([]byte(nil), chainID...), unsigned...))
	assert.Equal(t, want, signer.Digest(chainID, unsigned))

	other := bytes.Repeat([]byte{0x22}, signer.ChainIDSize)
	assert.NotEqual(t, signer.Digest(chainID, unsigned), signer.Digest(other, unsigned))
}

func TestSignDigestRecoversSigner(t *testing.T) {
	for i := 0; i < 32; i++ {
		k, err := keys.Generate()
		require.NoError(t, err)

		digest := sha256.Sum256([]byte{byte(i)})
		sig, err := signer.SignDigest(k, digest)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, sig[0], byte(31))
		assert.LessOrEqual(t, sig[0], byte(34))

		var s secp256k1.ModNScalar
		s.SetByteSlice(sig[33:])
		assert.False(t, s.IsOverHalfOrder(), "signature must be low-S")

		pub, err := signer.Recover(digest, sig)
		require.NoError(t, err)
		assert.Equal(t, k.PublicKey(), pub)
		assert.True(t, signer.Verify(k.PublicKey(), digest, sig))

		other, err := keys.Generate()
		require.NoError(t, err)
		assert.False(t, signer.Verify(other.PublicKey(), digest, sig))
	}
}

func TestSignDigestIsDeterministic(t *testing.T) {
	k := referenceKey(t)
	digest := sha256.Sum256([]byte("xwc"))

	a, err := signer.SignDigest(k, digest)
	require.NoError(t, err)
	b, err := signer.SignDigest(k, digest)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSignDigestIsCanonical(t *testing.T) {
	for i := 0; i < 64; i++ {
		k, err := keys.Generate()
		require.NoError(t, err)

		digest := sha256.Sum256([]byte{byte(i), 0x5a})
		sig, err := signer.SignDigest(k, digest)
		require.NoError(t, err)

		r, s := sig[1:33], sig[33:]
		assert.Zero(t, r[0]&0x80, "r must not have its top bit set")
		assert.Zero(t, s[0]&0x80, "s must not have its top bit set")
		assert.False(t, r[0] == 0 && r[1]&0x80 == 0, "r must not carry a redundant leading zero")
		assert.False(t, s[0] == 0 && s[1]&0x80 == 0, "s must not carry a redundant leading zero")
		assert.True(t, signer.IsCanonical(sig))
	}
}

func TestSignDigestSkipsNonCanonicalNonce(t *testing.T) {
	one := make([]byte, keys.PrivateKeySize)
	one[len(one)-1] = 1
	k, err := keys.FromBytes(one)
	require.NoError(t, err)

	tests := []struct {
		name       string
		msg        string
		want       string
		firstNonce bool
	}{
		{
			name:       "first nonce is canonical",
			msg:        "a",
			want:       "1f0b197d89de2ad88bea907ad78372246a110f893ef365ba2812a8be4e5d5772b674e2609d6630a596daba04c2f47855f6d767a79ee79b2bec621e35c0d5a25ce2",
			firstNonce: true,
		},
		{
			name: "fourth nonce is the first canonical one",
			msg:  "c",
			want: "1f4a038018657d67df067654da76c06b8d75c705782c4c35a41ea08b0d4c1acff328484e320277d17ca8e3192e4e726d0080c6fc0d68d281cf68aef3e1ecdbdbe1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest := sha256.Sum256([]byte(tt.msg))
			sig, err := signer.SignDigest(k, digest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(sig[:]))

			plain := ecdsa.SignCompact(k.Secp256k1(), digest[:], true)
			if tt.firstNonce {
				assert.Equal(t, plain, sig[:])
			} else {
				assert.NotEqual(t, plain, sig[:])
			}
		})
	}
}

func TestIsCanonical(t *testing.T) {
	valid := func() transaction.Signature {
		var sig transaction.Signature
		sig[0] = 31
		sig[1], sig[33] = 0x12, 0x34
		return sig
	}

	tests := []struct {
		name   string
		mutate func(*transaction.Signature)
		want   bool
	}{
		{"valid", func(*transaction.Signature) {}, true},
		{"r top bit", func(s *transaction.Signature) { s[1] = 0x80 }, false},
		{"s top bit", func(s *transaction.Signature) { s[33] = 0xff }, false},
		{"r redundant zero", func(s *transaction.Signature) { s[1], s[2] = 0, 0x7f }, false},
		{"s redundant zero", func(s *transaction.Signature) { s[33], s[34] = 0, 0x01 }, false},
		{"r needed zero", func(s *transaction.Signature) { s[1], s[2] = 0, 0x80 }, true},
		{"s needed zero", func(s *transaction.Signature) { s[33], s[34] = 0, 0xc0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := valid()
			tt.mutate(&sig)
			assert.Equal(t, tt.want, signer.IsCanonical(sig))
		})
	}
}

func TestSignDigestRequiresKey(t *testing.T) {
	_, err := signer.SignDigest(nil, [32]byte{})
	assert.ErrorIs(t, err, errs.ErrCrypto)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	k := referenceKey(t)
	digest := sha256.Sum256([]byte("xwc"))
	sig, err := signer.SignDigest(k, digest)
	require.NoError(t, err)

	tampered := sig
	tampered[40] ^= 0x01
	assert.False(t, signer.Verify(k.PublicKey(), digest, tampered))

	var zero transaction.Signature
	assert.False(t, signer.Verify(k.PublicKey(), digest, zero))
}

func TestSignTransfer(t *testing.T) {
	k := referenceKey(t)
	defer k.Zero()

	tx := transferTx(t, k)
	require.NoError(t, signer.Sign(tx, chainID, referenceWIF))
	require.Len(t, tx.Signatures, 1)

	unsigned, err := tx.UnsignedBytes()
	require.NoError(t, err)
	digest := signer.Digest(chainID, unsigned)

	pub, err := signer.Recover(digest, tx.Signatures[0])
	require.NoError(t, err)
	assert.Equal(t, "XWC8R3MLmhUuAwBy2fX4KX6ZACmGp6ZgurX2qSv1Pt88aQsmBhVLA", pub.String(prefix))
	assert.NoError(t, signer.VerifyTransaction(tx, chainID, k.PublicKey()))

	// signing the same inputs again yields the same bytes
	again := transferTx(t, k)
	require.NoError(t, signer.Sign(again, chainID, referenceWIF))

	first, err := tx.Bytes()
	require.NoError(t, err)
	second, err := again.Bytes()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, len(unsigned)+1+transaction.SignatureSize)

	// a different chain id yields a different signature
	replay := transferTx(t, k)
	require.NoError(t, signer.Sign(replay, bytes.Repeat([]byte{0x22}, signer.ChainIDSize), referenceWIF))
	assert.NotEqual(t, tx.Signatures[0], replay.Signatures[0])
	assert.Error(t, signer.VerifyTransaction(replay, chainID, k.PublicKey()))
}

func TestSignMultipleKeysKeepsOrder(t *testing.T) {
	first := referenceKey(t)
	second, err := keys.Generate()
	require.NoError(t, err)

	tx := transferTx(t, first)
	secondWIF := keys.ToWIF(second, networkByte, true)

	require.NoError(t, signer.Sign(tx, chainID, referenceWIF, secondWIF))
	require.Len(t, tx.Signatures, 2)
	assert.NoError(t, signer.VerifyTransaction(tx, chainID, first.PublicKey(), second.PublicKey()))
	assert.Error(t, signer.VerifyTransaction(tx, chainID, second.PublicKey(), first.PublicKey()))
}

func TestSignIsAllOrNothing(t *testing.T) {
	k := referenceKey(t)
	tx := transferTx(t, k)

	err := signer.Sign(tx, chainID, referenceWIF, "5KatTfFZseaDsDf1d3JHCdBcUDdJZCLS2RwbEgoix1zyUMuHqVs")
	assert.ErrorIs(t, err, errs.ErrCrypto)
	assert.Empty(t, tx.Signatures)

	err = signer.Sign(tx, chainID)
	assert.ErrorIs(t, err, errs.ErrCrypto)
	assert.Empty(t, tx.Signatures)

	err = signer.Sign(tx, chainID[:31], referenceWIF)
	assert.ErrorIs(t, err, errs.ErrTransaction)
	assert.Empty(t, tx.Signatures)

	err = signer.SignWithKeys(nil, chainID, k)
	assert.ErrorIs(t, err, errs.ErrTransaction)
}
