package probe

import (
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/util/command"
)

const (
	verboseFlag string = "verbose"
)

// New returns the probe command group, which checks the configured node.
func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}
