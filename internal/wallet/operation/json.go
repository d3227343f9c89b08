package operation

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/errs"
)

// AssetJSON is the node's JSON form of an asset amount.
type AssetJSON struct {
	Amount  uint64 `json:"amount"`
	AssetID string `json:"asset_id"`
}

type MemoJSON struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Nonce   uint64 `json:"nonce"`
	Message string `json:"message"`
}

type TransferJSON struct {
	Fee        AssetJSON `json:"fee"`
	FromAddr   string    `json:"from_addr"`
	ToAddr     string    `json:"to_addr"`
	Amount     AssetJSON `json:"amount"`
	Memo       *MemoJSON `json:"memo,omitempty"`
	Extensions [][]any   `json:"extensions"`
}

type ContractInvokeJSON struct {
	Fee          AssetJSON `json:"fee"`
	InvokeCost   uint64    `json:"invoke_cost"`
	GasPrice     uint64    `json:"gas_price"`
	CallerAddr   string    `json:"caller_addr"`
	CallerPubKey string    `json:"caller_pubkey"`
	ContractID   string    `json:"contract_id"`
	ContractAPI  string    `json:"contract_api"`
	ContractArg  string    `json:"contract_arg"`
	Extensions   [][]any   `json:"extensions"`
}

type ContractTransferJSON struct {
	Fee          AssetJSON `json:"fee"`
	InvokeCost   uint64    `json:"invoke_cost"`
	GasPrice     uint64    `json:"gas_price"`
	CallerAddr   string    `json:"caller_addr"`
	CallerPubKey string    `json:"caller_pubkey"`
	ContractID   string    `json:"contract_id"`
	Amount       AssetJSON `json:"amount"`
	Param        string    `json:"param"`
	Extensions   [][]any   `json:"extensions"`
}

// ToJSON returns the [tag, body] pair the node expects. pubKeyPrefix renders
// public keys.
func ToJSON(op Operation, pubKeyPrefix string) ([]any, error) {
	switch o := op.(type) {
	case *Transfer:
		body := TransferJSON{
			Fee:        assetJSON(o.Fee),
			FromAddr:   o.From.String(),
			ToAddr:     o.To.String(),
			Amount:     assetJSON(o.Amount),
			Extensions: ExtensionsJSON(o.Extensions),
		}
		if o.Memo != nil {
			body.Memo = &MemoJSON{
				From:    o.Memo.From.String(pubKeyPrefix),
				To:      o.Memo.To.String(pubKeyPrefix),
				Nonce:   o.Memo.Nonce,
				Message: hex.EncodeToString(o.Memo.Message),
			}
		}
		return []any{TagTransfer, body}, nil
	case *ContractInvoke:
		return []any{TagContractInvoke, ContractInvokeJSON{
			Fee:          assetJSON(o.Fee),
			InvokeCost:   o.GasLimit,
			GasPrice:     o.GasPrice,
			CallerAddr:   o.CallerAddr.String(),
			CallerPubKey: o.CallerPubKey.String(pubKeyPrefix),
			ContractID:   o.ContractID.String(),
			ContractAPI:  o.API,
			ContractArg:  o.Args,
			Extensions:   ExtensionsJSON(o.Extensions),
		}}, nil
	case *ContractTransfer:
		return []any{TagContractTransfer, ContractTransferJSON{
			Fee:          assetJSON(o.Fee),
			InvokeCost:   o.GasLimit,
			GasPrice:     o.GasPrice,
			CallerAddr:   o.CallerAddr.String(),
			CallerPubKey: o.CallerPubKey.String(pubKeyPrefix),
			ContractID:   o.ContractID.String(),
			Amount:       assetJSON(o.Amount),
			Param:        o.Memo,
			Extensions:   ExtensionsJSON(o.Extensions),
		}}, nil
	default:
		return nil, errors.Wrapf(errs.ErrUnsupportedOperation, "operation %T", op)
	}
}

// ExtensionsJSON renders extensions as [tag, hex data] pairs; never nil.
func ExtensionsJSON(exts []Extension) [][]any {
	out := make([][]any, 0, len(exts))
	for _, ext := range exts {
		out = append(out, []any{ext.Tag, hex.EncodeToString(ext.Data)})
	}
	return out
}

func assetJSON(a amount.AssetAmount) AssetJSON {
	return AssetJSON{Amount: a.Amount, AssetID: a.AssetID.String()}
}
