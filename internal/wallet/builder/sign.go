package builder

import (
	"context"
	"encoding/hex"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/util"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/signer"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

func (s *service) SignTransaction(ctx context.Context, tx *transaction.Transaction, wifs ...string) (*SignResult, error) {
	if tx == nil {
		return nil, errors.Wrap(errs.ErrTransaction, "transaction is required")
	}

	decoded := make([]*keys.PrivateKey, 0, len(wifs))
	defer func() {
		for _, k := range decoded {
			k.Zero()
		}
	}()

	for i, wif := range wifs {
		k, err := keys.FromWIF(wif, s.network.NetworkByte)
		if err != nil {
			return nil, errors.Wrapf(err, "key %d", i)
		}
		decoded = append(decoded, k)
	}

	return s.SignTransactionWithKeys(ctx, tx, decoded...)
}

func (s *service) SignTransactionWithKeys(ctx context.Context, tx *transaction.Transaction, signers ...*keys.PrivateKey) (*SignResult, error) {
	if err := signer.SignWithKeys(tx, s.chainID, signers...); err != nil {
		return nil, err
	}

	raw, err := tx.Bytes()
	if err != nil {
		return nil, err
	}
	txID, err := tx.ID()
	if err != nil {
		return nil, err
	}
	js, err := tx.MarshalJSONWithPrefix(s.network.AddressPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode transaction")
	}

	util.LogFromContext(ctx).Info().
		Str("tx_id", txID).
		Int("signatures", len(tx.Signatures)).
		Str("network", s.network.Name).
		Msg("Signed transaction")

	return &SignResult{
		Transaction: tx,
		JSON:        js,
		Hex:         hex.EncodeToString(raw),
		TxID:        txID,
	}, nil
}
