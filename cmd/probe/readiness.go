package probe

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/util"
	"github/chapool/go-xwc/internal/util/command"
)

func newReadiness() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks that the node serves the configured chain and returns reference data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := command.ConfigFromContext(ctx)

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

			network, err = command.ResolveNetwork(ctx, cfg, client)
			if err != nil {
				return errors.Wrap(err, "node is not ready")
			}

			ref, err := client.GetReferenceInfo(ctx)
			if err != nil {
				return errors.Wrap(err, "node is not ready")
			}

			if verbose {
				command.LogMetrics(ctx, reg)
			}

			util.LogFromContext(ctx).Info().
				Str("network", network.Name).
				Str("chain_id", network.ChainID).
				Str("ref_info", ref.String()).
				Msg("Node is ready")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, verboseFlag, "v", false, "Log RPC metrics")

	return cmd
}
