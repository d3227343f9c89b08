package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSubcommandGroup returns a command that only groups subCommands and
// prints its help when run directly.
func NewSubcommandGroup(name string, subCommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <subcommand>", name),
		Short: fmt.Sprintf("%s related subcommands", name),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subCommands...)

	return cmd
}
