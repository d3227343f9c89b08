package keys

import (
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/util/command"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/keys"
)

func newAddress() *cobra.Command {
	return &cobra.Command{
		Use:   "address <public-key>",
		Short: "Derives the normal and contract addresses of a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, err := command.ConfigFromContext(cmd.Context()).ResolveNetwork()
			if err != nil {
				return err
			}

			pub, err := keys.ParsePublicKey(args[0], network.AddressPrefix)
			if err != nil {
				return err
			}

			return command.PrintJSON(cmd.OutOrStdout(), KeyInfo{
				PublicKey:       pub.String(network.AddressPrefix),
				Address:         address.FromPublicKey(pub, network.AddressVersion, network.AddressPrefix).String(),
				ContractAddress: address.FromPublicKey(pub, network.ContractVersion, network.AddressPrefix).String(),
			})
		},
	}
}
