package tx

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/wallet/builder"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

func newTransfer() *cobra.Command {
	var (
		common commonFlags
		req    builder.TransferRequest
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Builds and signs a transfer between two addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.run(cmd, func(ctx context.Context, svc builder.Service, ref transaction.ReferenceInfo) (*transaction.Transaction, error) {
				req.Reference = ref
				return svc.CreateTransferTransaction(ctx, &req)
			})
		},
	}

	cmd.Flags().StringVar(&req.FromAddr, "from", "", "Sender address")
	cmd.Flags().StringVar(&req.ToAddr, "to", "", "Recipient address")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "Decimal amount")
	cmd.Flags().StringVar(&req.Fee, "fee", "", "Decimal fee in the core asset")
	cmd.Flags().StringVar(&req.Memo, "memo", "", "Plaintext memo")
	registerAssetFlags(cmd, &req.Asset)
	common.register(cmd)

	for _, name := range []string{"from", "to", "amount", "fee"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func registerAssetFlags(cmd *cobra.Command, ref *builder.AssetRef) {
	cmd.Flags().StringVar(&ref.ID, "asset-id", "", "Asset id (1.3.x); defaults to the core asset")
	cmd.Flags().Uint8Var(&ref.Precision, "precision", 0, "Precision of --asset-id")
}
