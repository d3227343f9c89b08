// Package node talks to a full node: it fetches the reference data a new
// transaction is bound to and broadcasts signed transactions.
package node

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

// ErrNode wraps errors reported by the node or its transport.
var ErrNode = errors.New("node error")

// Client is the node collaborator used by the command line tool.
type Client interface {
	// GetReferenceInfo returns the current reference block and an expiration
	// one window from now
	GetReferenceInfo(ctx context.Context) (transaction.ReferenceInfo, error)

	// GetChainID returns the node's hex chain id
	GetChainID(ctx context.Context) (string, error)

	// Broadcast submits tx and waits until it is included in a block
	Broadcast(ctx context.Context, tx *transaction.Transaction) (*Receipt, error)

	Close() error
}

// Receipt is the node's confirmation of a broadcast transaction.
type Receipt struct {
	TxID     string `json:"id"`
	BlockNum uint64 `json:"block_num"`
	TrxNum   uint64 `json:"trx_num"`
}
