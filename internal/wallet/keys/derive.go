package keys

import (
	"crypto/sha512"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github/chapool/go-xwc/internal/wallet/errs"
	"golang.org/x/crypto/pbkdf2"
)

// SeedFromMnemonic converts a mnemonic into a 64-byte BIP39 seed.
// The caller must wipe the seed after use.
func SeedFromMnemonic(mnemonic string, passphrase string) []byte {
	// BIP39: seed = PBKDF2(mnemonic, "mnemonic" + passphrase, 2048, 64, SHA512)
	const (
		pbkdf2Iterations = 2048
		pbkdf2KeyLength  = 64
	)

	return pbkdf2.Key(
		[]byte(mnemonic),
		[]byte("mnemonic"+passphrase),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)
}

// DeriveFromSeed derives a private key from seed along a BIP32 path such as
// "m/44'/0'/0'/0/0".
func DeriveFromSeed(seed []byte, path string) (*PrivateKey, error) {
	indices, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrCrypto, "failed to create master key: %v", err)
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(errs.ErrCrypto, "failed to derive child key at index %d: %v", index, err)
		}
	}

	privateKey, err := FromBytes(key.Key)
	wipe(key.Key)
	wipe(masterKey.Key)
	if err != nil {
		return nil, errors.Wrap(err, "derived key")
	}

	return privateKey, nil
}

// parsePath parses a BIP32 path string into child indices.
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func parsePath(path string) ([]uint32, error) {
	if path == "m" {
		return nil, nil
	}
	if !strings.HasPrefix(path, "m/") {
		return nil, errors.Wrapf(errs.ErrFormat, "invalid derivation path %q", path)
	}

	parts := strings.Split(path[2:], "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(errs.ErrFormat, "invalid path segment %q in %q", part, path)
		}

		if hardened {
			index += uint64(bip32.FirstHardenedChild)
		}
		indices = append(indices, uint32(index))
	}

	return indices, nil
}
