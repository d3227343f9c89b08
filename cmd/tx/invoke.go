package tx

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/wallet/builder"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

func newInvoke() *cobra.Command {
	var (
		common commonFlags
		req    builder.ContractInvokeRequest
	)

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Builds and signs a contract api call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return common.run(cmd, func(ctx context.Context, svc builder.Service, ref transaction.ReferenceInfo) (*transaction.Transaction, error) {
				req.Reference = ref
				return svc.CreateContractInvokeTransaction(ctx, &req)
			})
		},
	}

	registerCallerFlags(cmd, &req.CallerAddr, &req.CallerPubKey, &req.ContractID)
	cmd.Flags().StringVar(&req.API, "api", "", "Contract api name")
	cmd.Flags().StringVar(&req.Args, "args", "", "Contract api argument")
	cmd.Flags().StringVar(&req.Fee, "fee", "", "Decimal fee in the core asset")
	registerGasFlags(cmd, &req.GasLimit, &req.GasPrice)
	common.register(cmd)

	for _, name := range []string{"caller", "caller-pubkey", "contract", "api", "fee"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

const (
	defaultGasLimit = 10000
	defaultGasPrice = 1
)

func registerCallerFlags(cmd *cobra.Command, caller, pubKey, contract *string) {
	cmd.Flags().StringVar(caller, "caller", "", "Caller address")
	cmd.Flags().StringVar(pubKey, "caller-pubkey", "", "Caller public key")
	cmd.Flags().StringVar(contract, "contract", "", "Contract address")
}

func registerGasFlags(cmd *cobra.Command, limit, price *uint64) {
	cmd.Flags().Uint64Var(limit, "gas-limit", defaultGasLimit, "Gas limit")
	cmd.Flags().Uint64Var(price, "gas-price", defaultGasPrice, "Gas price")
}
