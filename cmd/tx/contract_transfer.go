package tx

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/wallet/builder"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

func newContractTransfer() *cobra.Command {
	var (
		common commonFlags
		req    builder.ContractTransferRequest
	)

	cmd := &cobra.Command{
		Use:   "contract-transfer",
		Short: "Builds and signs a transfer into a contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.run(cmd, func(ctx context.Context, svc builder.Service, ref transaction.ReferenceInfo) (*transaction.Transaction, error) {
				req.Reference = ref
				return svc.CreateContractTransferTransaction(ctx, &req)
			})
		},
	}

	registerCallerFlags(cmd, &req.CallerAddr, &req.CallerPubKey, &req.ContractID)
	cmd.Flags().StringVar(&req.Amount, "amount", "", "Decimal amount")
	cmd.Flags().StringVar(&req.Memo, "memo", "", "Memo passed to the contract")
	cmd.Flags().StringVar(&req.Fee, "fee", "", "Decimal fee in the core asset")
	registerAssetFlags(cmd, &req.Asset)
	registerGasFlags(cmd, &req.GasLimit, &req.GasPrice)
	common.register(cmd)

	for _, name := range []string{"caller", "caller-pubkey", "contract", "amount", "fee"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
