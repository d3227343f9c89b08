package operation

import (
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/errs"
	"github/chapool/go-xwc/internal/wallet/keys"
)

func (op *Transfer) Validate() error {
	if err := validateFee(op.Fee); err != nil {
		return errors.Wrap(err, "transfer")
	}
	if !op.Amount.AssetID.IsAsset() {
		return errors.Wrapf(errs.ErrTransaction, "transfer: amount asset id %s is not an asset", op.Amount.AssetID)
	}
	if op.Amount.Amount == 0 {
		return errors.Wrap(errs.ErrTransaction, "transfer: amount must be positive")
	}
	if op.From.Version == address.VersionContract {
		return errors.Wrap(errs.ErrTransaction, "transfer: from must not be a contract address")
	}
	if op.To.Version == 0 || op.From.Version == 0 {
		return errors.Wrap(errs.ErrTransaction, "transfer: from and to addresses are required")
	}
	return nil
}

func (op *ContractInvoke) Validate() error {
	if err := validateFee(op.Fee); err != nil {
		return errors.Wrap(err, "contract invoke")
	}
	if err := validateCaller(op.CallerAddr, op.CallerPubKey); err != nil {
		return errors.Wrap(err, "contract invoke")
	}
	if op.ContractID.Version != address.VersionContract {
		return errors.Wrap(errs.ErrTransaction, "contract invoke: contract id is not a contract address")
	}
	if op.API == "" {
		return errors.Wrap(errs.ErrTransaction, "contract invoke: api is required")
	}
	return nil
}

func (op *ContractTransfer) Validate() error {
	if err := validateFee(op.Fee); err != nil {
		return errors.Wrap(err, "contract transfer")
	}
	if err := validateCaller(op.CallerAddr, op.CallerPubKey); err != nil {
		return errors.Wrap(err, "contract transfer")
	}
	if op.ContractID.Version != address.VersionContract {
		return errors.Wrap(errs.ErrTransaction, "contract transfer: contract id is not a contract address")
	}
	if !op.Amount.AssetID.IsAsset() {
		return errors.Wrapf(errs.ErrTransaction, "contract transfer: amount asset id %s is not an asset", op.Amount.AssetID)
	}
	if op.Amount.Amount == 0 {
		return errors.Wrap(errs.ErrTransaction, "contract transfer: amount must be positive")
	}
	return nil
}

func validateFee(fee amount.AssetAmount) error {
	if !fee.AssetID.IsAsset() {
		return errors.Wrapf(errs.ErrTransaction, "fee is missing or has invalid asset id %s", fee.AssetID)
	}
	return nil
}

func validateCaller(caller address.Address, pub keys.PublicKey) error {
	if pub.IsZero() {
		return errors.Wrap(errs.ErrTransaction, "caller public key is required")
	}
	if caller.Version == address.VersionContract {
		return errors.Wrap(errs.ErrTransaction, "caller must not be a contract address")
	}
	if address.FromPublicKey(pub, caller.Version, caller.Prefix).Payload != caller.Payload {
		return errors.Wrap(errs.ErrTransaction, "caller address does not match caller public key")
	}
	return nil
}
