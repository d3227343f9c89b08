package keys

import (
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/util/command"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/keys"
)

const defaultDerivationPath = "m/44'/0'/0'/0/0"

func newDerive() *cobra.Command {
	var (
		path       string
		passphrase string
		compressed bool
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derives a key from a BIP39 mnemonic read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			network, err := command.ConfigFromContext(cmd.Context()).ResolveNetwork()
			if err != nil {
				return err
			}

			mnemonic, err := command.ReadSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Mnemonic")
			if err != nil {
				return err
			}

			seed := keys.SeedFromMnemonic(mnemonic, passphrase)
			defer func() {
				for i := range seed {
					seed[i] = 0
				}
			}()

			k, err := keys.DeriveFromSeed(seed, path)
			if err != nil {
				return err
			}
			defer k.Zero()

			pub := k.PublicKey()

			return command.PrintJSON(cmd.OutOrStdout(), KeyInfo{
				WIF:       keys.ToWIF(k, network.NetworkByte, compressed),
				PublicKey: pub.String(network.AddressPrefix),
				Address:   address.FromPublicKey(pub, network.AddressVersion, network.AddressPrefix).String(),
				Path:      path,
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", defaultDerivationPath, "BIP32 derivation path")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Optional BIP39 passphrase")
	cmd.Flags().BoolVar(&compressed, compressedFlag, false, "Encode the WIF with the compressed public key flag")

	return cmd
}
