package keys

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/errs"
)

const (
	wifChecksumSize   = 4
	wifCompressedFlag = 0x01
)

// WIF is a decoded wallet-import-format private key.
type WIF struct {
	Key         *PrivateKey
	NetworkByte byte
	Compressed  bool
}

// ToWIF encodes k as base58(networkByte ‖ key ‖ [0x01] ‖ checksum), where the
// checksum is the first 4 bytes of SHA256(SHA256(payload)).
func ToWIF(k *PrivateKey, networkByte byte, compressed bool) string {
	payload := make([]byte, 0, 1+PrivateKeySize+1+wifChecksumSize)
	payload = append(payload, networkByte)
	payload = append(payload, k.key.Serialize()...)
	if compressed {
		payload = append(payload, wifCompressedFlag)
	}
	payload = append(payload, doubleSHA256(payload)[:wifChecksumSize]...)

	s := base58.Encode(payload)
	wipe(payload)

	return s
}

// DecodeWIF is the inverse of ToWIF.
func DecodeWIF(s string) (*WIF, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrap(errs.ErrCrypto, "WIF is not valid base58")
	}
	defer wipe(raw)

	var compressed bool
	switch len(raw) {
	case 1 + PrivateKeySize + wifChecksumSize:
	case 1 + PrivateKeySize + 1 + wifChecksumSize:
		if raw[1+PrivateKeySize] != wifCompressedFlag {
			return nil, errors.Wrapf(errs.ErrCrypto, "WIF has invalid compression flag 0x%02x", raw[1+PrivateKeySize])
		}
		compressed = true
	default:
		return nil, errors.Wrapf(errs.ErrCrypto, "WIF has invalid length %d", len(raw))
	}

	payload, checksum := raw[:len(raw)-wifChecksumSize], raw[len(raw)-wifChecksumSize:]
	if !bytes.Equal(doubleSHA256(payload)[:wifChecksumSize], checksum) {
		return nil, errors.Wrap(errs.ErrCrypto, "WIF checksum mismatch")
	}

	key, err := FromBytes(payload[1 : 1+PrivateKeySize])
	if err != nil {
		return nil, errors.Wrap(err, "WIF")
	}

	return &WIF{Key: key, NetworkByte: payload[0], Compressed: compressed}, nil
}

// FromWIF decodes s and checks it was encoded for networkByte.
func FromWIF(s string, networkByte byte) (*PrivateKey, error) {
	w, err := DecodeWIF(s)
	if err != nil {
		return nil, err
	}
	if w.NetworkByte != networkByte {
		w.Key.Zero()
		return nil, errors.Wrapf(errs.ErrCrypto, "WIF network byte 0x%02x, expected 0x%02x", w.NetworkByte, networkByte)
	}
	return w.Key, nil
}

func doubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
