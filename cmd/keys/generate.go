package keys

import (
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/util"
	"github/chapool/go-xwc/internal/util/command"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/keys"
)

func newGenerate() *cobra.Command {
	var compressed bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates a new private key and prints its WIF, public key and address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			network, err := command.ConfigFromContext(ctx).ResolveNetwork()
			if err != nil {
				return err
			}

			k, err := keys.Generate()
			if err != nil {
				return err
			}
			defer k.Zero()

			pub := k.PublicKey()
			info := KeyInfo{
				WIF:       keys.ToWIF(k, network.NetworkByte, compressed),
				PublicKey: pub.String(network.AddressPrefix),
				Address:   address.FromPublicKey(pub, network.AddressVersion, network.AddressPrefix).String(),
			}

			util.LogFromContext(ctx).Debug().Str("address", info.Address).Msg("Generated key")

			return command.PrintJSON(cmd.OutOrStdout(), info)
		},
	}

	cmd.Flags().BoolVar(&compressed, compressedFlag, false, "Encode the WIF with the compressed public key flag")

	return cmd
}
