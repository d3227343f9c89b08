// Package operation defines the supported ledger operations and their
// canonical binary encoding.
package operation

import (
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/keys"
)

// Tag identifies an operation type on the wire.
type Tag uint64

const (
	TagTransfer         Tag = 0
	TagContractInvoke   Tag = 79
	TagContractTransfer Tag = 81
)

// Operation is one of Transfer, ContractInvoke or ContractTransfer. Encode
// rejects any other implementation.
type Operation interface {
	Tag() Tag
	Validate() error
}

// Extension is an opaque tagged extension carried by operations and transactions.
type Extension struct {
	Tag  uint64
	Data []byte
}

// Transfer moves an asset amount between two addresses.
type Transfer struct {
	Fee        amount.AssetAmount
	From       address.Address
	To         address.Address
	Amount     amount.AssetAmount
	Memo       *Memo
	Extensions []Extension
}

func (*Transfer) Tag() Tag { return TagTransfer }

// ContractInvoke calls api on a contract with a string argument.
type ContractInvoke struct {
	Fee          amount.AssetAmount
	GasLimit     uint64
	GasPrice     uint64
	CallerAddr   address.Address
	CallerPubKey keys.PublicKey
	ContractID   address.Address
	API          string
	Args         string
	Extensions   []Extension
}

func (*ContractInvoke) Tag() Tag { return TagContractInvoke }

// ContractTransfer sends an asset amount into a contract.
type ContractTransfer struct {
	Fee          amount.AssetAmount
	GasLimit     uint64
	GasPrice     uint64
	CallerAddr   address.Address
	CallerPubKey keys.PublicKey
	ContractID   address.Address
	Amount       amount.AssetAmount
	Memo         string
	Extensions   []Extension
}

func (*ContractTransfer) Tag() Tag { return TagContractTransfer }

// Name returns the protocol name of a supported operation.
func Name(op Operation) string {
	switch op.(type) {
	case *Transfer:
		return "transfer"
	case *ContractInvoke:
		return "contract_invoke"
	case *ContractTransfer:
		return "transfer_contract"
	default:
		return "unknown"
	}
}
