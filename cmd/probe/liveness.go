package probe

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/util"
	"github/chapool/go-xwc/internal/util/command"
)

func newLiveness() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Checks that the node accepts a websocket login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := command.ConfigFromContext(ctx)
			log := util.LogFromContext(ctx)

			network, err := cfg.ResolveNetwork()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			client, err := command.DialNode(ctx, cfg, network, reg)
			if err != nil {
				return errors.Wrap(err, "node is not live")
			}
			defer client.Close()

			if verbose {
				command.LogMetrics(ctx, reg)
			}

			log.Info().Str("endpoint", cfg.Node.Endpoint).Msg("Node is live")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "Log RPC metrics")

	return cmd
}
