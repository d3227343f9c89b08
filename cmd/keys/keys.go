package keys

import (
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/util/command"
)

const compressedFlag = "compressed"

// New returns the keys command group.
func New() *cobra.Command {
	return command.NewSubcommandGroup("keys",
		newGenerate(),
		newDerive(),
		newAddress(),
		newInfo(),
	)
}

// KeyInfo is printed by every keys subcommand.
type KeyInfo struct {
	WIF             string `json:"wif,omitempty"`
	PublicKey       string `json:"public_key"`
	Address         string `json:"address"`
	ContractAddress string `json:"contract_address,omitempty"`
	Path            string `json:"path,omitempty"`
}
