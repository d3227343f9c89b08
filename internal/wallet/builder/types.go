package builder

import (
	"context"

	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/operation"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

// Service builds and signs transactions for one network.
type Service interface {
	// CreateTransferTransaction builds an unsigned transfer between two normal addresses
	CreateTransferTransaction(ctx context.Context, req *TransferRequest) (*transaction.Transaction, error)

	// CreateContractInvokeTransaction builds an unsigned contract call
	CreateContractInvokeTransaction(ctx context.Context, req *ContractInvokeRequest) (*transaction.Transaction, error)

	// CreateContractTransferTransaction builds an unsigned transfer into a contract
	CreateContractTransferTransaction(ctx context.Context, req *ContractTransferRequest) (*transaction.Transaction, error)

	// SignTransaction signs tx with every WIF key, in order
	SignTransaction(ctx context.Context, tx *transaction.Transaction, wifs ...string) (*SignResult, error)
	// SignTransactionWithKeys signs tx with already decoded keys; the caller wipes them
	SignTransactionWithKeys(ctx context.Context, tx *transaction.Transaction, signers ...*keys.PrivateKey) (*SignResult, error)
}

// AssetRef selects the asset an amount is denominated in. The zero value
// selects the network's default asset.
type AssetRef struct {
	ID        string
	Precision uint8
}

// TransferRequest describes a transfer. Amounts are decimal strings; Fee is
// always in the network's default asset.
type TransferRequest struct {
	Reference transaction.ReferenceInfo
	FromAddr  string
	ToAddr    string
	Amount    string
	Asset     AssetRef
	Fee       string
	Memo      string
	// MemoEncrypter encrypts Memo when set; otherwise the memo is sent in plaintext.
	MemoEncrypter operation.MemoEncrypter
	Extensions    []operation.Extension
}

type ContractInvokeRequest struct {
	Reference    transaction.ReferenceInfo
	CallerAddr   string
	CallerPubKey string
	ContractID   string
	API          string
	Args         string
	Fee          string
	GasLimit     uint64
	GasPrice     uint64
	Extensions   []operation.Extension
}

type ContractTransferRequest struct {
	Reference    transaction.ReferenceInfo
	CallerAddr   string
	CallerPubKey string
	ContractID   string
	Amount       string
	Asset        AssetRef
	Memo         string
	Fee          string
	GasLimit     uint64
	GasPrice     uint64
	Extensions   []operation.Extension
}

// SignResult is a signed transaction with its transport encodings.
type SignResult struct {
	Transaction *transaction.Transaction
	// JSON is the node's JSON form, ready for broadcast
	JSON []byte
	// Hex is the signed binary encoding
	Hex  string
	TxID string
}
