// Package builder turns human supplied intent (decimal amounts, textual
// addresses and keys) into signed transactions for a configured network.
package builder

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/config"
	"github/chapool/go-xwc/internal/util"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/operation"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

type service struct {
	network config.Network
	chainID []byte
}

// NewService validates network and returns a Service bound to it.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(network config.Network) (Service, error) {
	if err := network.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid network")
	}

	chainID, err := network.ChainIDBytes()
	if err != nil {
		return nil, err
	}

	return &service{
		network: network,
		chainID: chainID,
	}, nil
}

func (s *service) CreateTransferTransaction(ctx context.Context, req *TransferRequest) (*transaction.Transaction, error) {
	log := util.LogFromContext(ctx).With().
		Str("operation", "transfer").
		Str("from", req.FromAddr).
		Str("to", req.ToAddr).
		Logger()

	from, err := address.ParseVersion(req.FromAddr, s.network.AddressPrefix, s.network.AddressVersion)
	if err != nil {
		return nil, errors.Wrap(err, "from address")
	}
	to, err := address.ParseVersion(req.ToAddr, s.network.AddressPrefix, s.network.AddressVersion)
	if err != nil {
		return nil, errors.Wrap(err, "to address")
	}

	value, err := s.assetAmount(req.Asset, req.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "amount")
	}
	fee, err := s.fee(req.Fee)
	if err != nil {
		return nil, err
	}

	memo, err := buildMemo(req.Memo, req.MemoEncrypter)
	if err != nil {
		return nil, err
	}

	tx, err := transaction.New(req.Reference, []operation.Operation{&operation.Transfer{
		Fee:        fee,
		From:       from,
		To:         to,
		Amount:     value,
		Memo:       memo,
		Extensions: req.Extensions,
	}}, nil)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Uint64("amount", value.Amount).
		Str("asset_id", value.AssetID.String()).
		Uint64("fee", fee.Amount).
		Msg("Built transfer transaction")

	return tx, nil
}

func (s *service) CreateContractInvokeTransaction(ctx context.Context, req *ContractInvokeRequest) (*transaction.Transaction, error) {
	log := util.LogFromContext(ctx).With().
		Str("operation", "contract_invoke").
		Str("contract_id", req.ContractID).
		Str("api", req.API).
		Logger()

	caller, pub, contract, err := s.parseContractCall(req.CallerAddr, req.CallerPubKey, req.ContractID)
	if err != nil {
		return nil, err
	}

	fee, err := s.fee(req.Fee)
	if err != nil {
		return nil, err
	}

	tx, err := transaction.New(req.Reference, []operation.Operation{&operation.ContractInvoke{
		Fee:          fee,
		GasLimit:     req.GasLimit,
		GasPrice:     req.GasPrice,
		CallerAddr:   caller,
		CallerPubKey: pub,
		ContractID:   contract,
		API:          req.API,
		Args:         req.Args,
		Extensions:   req.Extensions,
	}}, nil)
	if err != nil {
		return nil, err
	}

	log.Debug().Uint64("gas_limit", req.GasLimit).Uint64("gas_price", req.GasPrice).Msg("Built contract invoke transaction")

	return tx, nil
}

func (s *service) CreateContractTransferTransaction(ctx context.Context, req *ContractTransferRequest) (*transaction.Transaction, error) {
	log := util.LogFromContext(ctx).With().
		Str("operation", "transfer_contract").
		Str("contract_id", req.ContractID).
		Logger()

	caller, pub, contract, err := s.parseContractCall(req.CallerAddr, req.CallerPubKey, req.ContractID)
	if err != nil {
		return nil, err
	}

	value, err := s.assetAmount(req.Asset, req.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "amount")
	}
	fee, err := s.fee(req.Fee)
	if err != nil {
		return nil, err
	}

	tx, err := transaction.New(req.Reference, []operation.Operation{&operation.ContractTransfer{
		Fee:          fee,
		GasLimit:     req.GasLimit,
		GasPrice:     req.GasPrice,
		CallerAddr:   caller,
		CallerPubKey: pub,
		ContractID:   contract,
		Amount:       value,
		Memo:         req.Memo,
		Extensions:   req.Extensions,
	}}, nil)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Uint64("amount", value.Amount).
		Str("asset_id", value.AssetID.String()).
		Msg("Built contract transfer transaction")

	return tx, nil
}

func (s *service) parseContractCall(callerAddr, callerPubKey, contractID string) (address.Address, keys.PublicKey, address.Address, error) {
	caller, err := address.ParseVersion(callerAddr, s.network.AddressPrefix, s.network.AddressVersion)
	if err != nil {
		return address.Address{}, keys.PublicKey{}, address.Address{}, errors.Wrap(err, "caller address")
	}
	pub, err := keys.ParsePublicKey(callerPubKey, s.network.AddressPrefix)
	if err != nil {
		return address.Address{}, keys.PublicKey{}, address.Address{}, errors.Wrap(err, "caller public key")
	}
	contract, err := address.ParseVersion(contractID, s.network.AddressPrefix, s.network.ContractVersion)
	if err != nil {
		return address.Address{}, keys.PublicKey{}, address.Address{}, errors.Wrap(err, "contract id")
	}
	return caller, pub, contract, nil
}

func (s *service) assetAmount(ref AssetRef, decimal string) (amount.AssetAmount, error) {
	asset := s.network.DefaultAsset
	if ref.ID != "" {
		var err error
		asset, err = amount.NewAsset(ref.ID, ref.Precision)
		if err != nil {
			return amount.AssetAmount{}, err
		}
	}
	return asset.NewAmount(decimal)
}

func (s *service) fee(decimal string) (amount.AssetAmount, error) {
	fee, err := s.network.DefaultAsset.NewAmount(decimal)
	if err != nil {
		return amount.AssetAmount{}, errors.Wrap(err, "fee")
	}
	return fee, nil
}

func buildMemo(text string, encrypter operation.MemoEncrypter) (*operation.Memo, error) {
	if text == "" {
		return nil, nil
	}
	if encrypter == nil {
		return operation.PlainMemo(text), nil
	}

	memo, err := encrypter.EncryptMemo([]byte(text))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt memo")
	}
	return memo, nil
}
