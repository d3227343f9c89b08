package keys

import (
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/util/command"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/keys"
)

func newInfo() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Prints the public key and address of a WIF key read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			network, err := command.ConfigFromContext(cmd.Context()).ResolveNetwork()
			if err != nil {
				return err
			}

			wif, err := command.ReadSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "WIF")
			if err != nil {
				return err
			}

			k, err := keys.FromWIF(wif, network.NetworkByte)
			if err != nil {
				return err
			}
			defer k.Zero()

			pub := k.PublicKey()

			return command.PrintJSON(cmd.OutOrStdout(), KeyInfo{
				PublicKey: pub.String(network.AddressPrefix),
				Address:   address.FromPublicKey(pub, network.AddressVersion, network.AddressPrefix).String(),
			})
		},
	}
}
