package transaction

import (
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/util/jsonx"
	"github/chapool/go-xwc/internal/wallet/operation"
)

// ExpirationLayout is the node's timestamp format (UTC, no zone suffix).
const ExpirationLayout = "2006-01-02T15:04:05"

// JSON is the node's JSON representation of a signed transaction.
type JSON struct {
	RefBlockNum    uint16   `json:"ref_block_num"`
	RefBlockPrefix uint32   `json:"ref_block_prefix"`
	Expiration     string   `json:"expiration"`
	Operations     [][]any  `json:"operations"`
	Extensions     [][]any  `json:"extensions"`
	Signatures     []string `json:"signatures"`
}

// ToJSON builds the JSON form; pubKeyPrefix renders public keys inside operations.
func (tx *Transaction) ToJSON(pubKeyPrefix string) (*JSON, error) {
	ops := make([][]any, 0, len(tx.Operations))
	for i, op := range tx.Operations {
		pair, err := operation.ToJSON(op, pubKeyPrefix)
		if err != nil {
			return nil, errors.Wrapf(err, "operation %d", i)
		}
		ops = append(ops, pair)
	}

	sigs := make([]string, 0, len(tx.Signatures))
	for _, sig := range tx.Signatures {
		sigs = append(sigs, hex.EncodeToString(sig[:]))
	}

	return &JSON{
		RefBlockNum:    tx.RefBlockNum,
		RefBlockPrefix: tx.RefBlockPrefix,
		Expiration:     tx.Expiration.UTC().Format(ExpirationLayout),
		Operations:     ops,
		Extensions:     operation.ExtensionsJSON(tx.Extensions),
		Signatures:     sigs,
	}, nil
}

// MarshalJSONWithPrefix encodes the JSON form.
func (tx *Transaction) MarshalJSONWithPrefix(pubKeyPrefix string) ([]byte, error) {
	j, err := tx.ToJSON(pubKeyPrefix)
	if err != nil {
		return nil, err
	}
	return jsonx.Marshal(j)
}

// ParseExpiration parses a node timestamp as UTC.
func ParseExpiration(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ExpirationLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid expiration %q", s)
	}
	return t, nil
}
