package config

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/errs"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"

	// ChainIDSize is the length of a decoded chain id.
	ChainIDSize = 32

	DefaultAddressPrefix  = "XWC"
	DefaultNetworkByte    = 0x80
	DefaultAssetID        = "1.3.0"
	DefaultAssetSymbol    = "XWC"
	DefaultAssetPrecision = 5

	MainnetChainID = "2e13ba07b457f2e284dcfcbd3d4a3e4d78a6ed89a61006cdb7fdad6d67ef0b12"
)

// Network holds the chain parameters every build and sign call needs.
// Values are passed explicitly; nothing in the wallet packages reads globals.
type Network struct {
	Name            string
	ChainID         string
	AddressPrefix   string
	NetworkByte     byte
	AddressVersion  address.Version
	ContractVersion address.Version
	DefaultAsset    amount.Asset
	AssetSymbol     string
}

func MainnetNetwork() Network {
	return Network{
		Name:            NetworkMainnet,
		ChainID:         MainnetChainID,
		AddressPrefix:   DefaultAddressPrefix,
		NetworkByte:     DefaultNetworkByte,
		AddressVersion:  address.VersionNormal,
		ContractVersion: address.VersionContract,
		DefaultAsset:    defaultAsset(),
		AssetSymbol:     DefaultAssetSymbol,
	}
}

// TestnetNetwork shares the mainnet encodings. Its chain id is left empty and
// must be configured or fetched from a testnet node.
func TestnetNetwork() Network {
	n := MainnetNetwork()
	n.Name = NetworkTestnet
	n.ChainID = ""
	return n
}

// NetworkByName returns the preset for name.
func NetworkByName(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NetworkMainnet:
		return MainnetNetwork(), nil
	case NetworkTestnet:
		return TestnetNetwork(), nil
	default:
		return Network{}, errors.Errorf("unknown network %q", name)
	}
}

// ChainIDBytes decodes the hex chain id.
func (n Network) ChainIDBytes() ([]byte, error) {
	b, err := amount.ParseHex(n.ChainID)
	if err != nil {
		return nil, errors.Wrap(err, "chain id")
	}
	if len(b) != ChainIDSize {
		return nil, errors.Wrapf(errs.ErrFormat, "chain id has %d bytes, expected %d", len(b), ChainIDSize)
	}
	return b, nil
}

func (n Network) Validate() error {
	if n.ChainID == "" {
		return errors.Errorf("network %s: chain id is required", n.Name)
	}
	if _, err := n.ChainIDBytes(); err != nil {
		return errors.Wrapf(err, "network %s", n.Name)
	}
	if n.AddressPrefix == "" {
		return errors.Errorf("network %s: address prefix is required", n.Name)
	}
	if n.AddressVersion == n.ContractVersion {
		return errors.Errorf("network %s: address and contract versions must differ", n.Name)
	}
	if !n.DefaultAsset.ID.IsAsset() {
		return errors.Errorf("network %s: default asset %s is not an asset id", n.Name, n.DefaultAsset.ID)
	}
	if n.DefaultAsset.Precision > amount.MaxPrecision {
		return errors.Errorf("network %s: default asset precision %d exceeds %d", n.Name, n.DefaultAsset.Precision, amount.MaxPrecision)
	}
	return nil
}

// FormatChainID renders a decoded chain id as lowercase hex.
func FormatChainID(b []byte) string {
	return hex.EncodeToString(b)
}

func defaultAsset() amount.Asset {
	a, err := amount.NewAsset(DefaultAssetID, DefaultAssetPrecision)
	if err != nil {
		panic(err)
	}
	return a
}
