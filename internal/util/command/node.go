package command

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github/chapool/go-xwc/internal/config"
	"github/chapool/go-xwc/internal/node"
	"github/chapool/go-xwc/internal/util"
)

// DialNode connects to the configured node, recording RPC metrics in reg.
func DialNode(ctx context.Context, cfg config.Config, network config.Network, reg prometheus.Registerer) (*node.WSClient, error) {
	return node.Dial(ctx, node.Options{
		Endpoint:         cfg.Node.Endpoint,
		Timeout:          cfg.Node.Timeout,
		ExpirationWindow: cfg.Node.ExpirationWindow,
		AddressPrefix:    network.AddressPrefix,
		Metrics:          node.NewMetrics(reg),
	})
}

// ResolveNetwork returns the configured network. When the preset has no chain
// id it is fetched from client; when both exist they must agree.
func ResolveNetwork(ctx context.Context, cfg config.Config, client node.Client) (config.Network, error) {
	network, err := cfg.ResolveNetwork()
	if err != nil {
		return config.Network{}, err
	}

	if client != nil {
		nodeChainID, err := client.GetChainID(ctx)
		if err != nil {
			return config.Network{}, err
		}

		switch {
		case network.ChainID == "":
			util.LogFromContext(ctx).Info().Str("chain_id", nodeChainID).Msg("Using chain id reported by node")
			network.ChainID = nodeChainID
		case network.ChainID != nodeChainID:
			return config.Network{}, errors.Errorf("configured chain id %s does not match node chain id %s", network.ChainID, nodeChainID)
		}
	}

	if err := network.Validate(); err != nil {
		return config.Network{}, err
	}

	return network, nil
}

// LogMetrics writes the gathered node RPC metrics at debug level.
func LogMetrics(ctx context.Context, gatherer prometheus.Gatherer) {
	log := util.LogFromContext(ctx)

	families, err := gatherer.Gather()
	if err != nil {
		log.Debug().Err(err).Msg("Failed to gather metrics")
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			event := log.Debug().Str("metric", mf.GetName())
			for _, l := range m.GetLabel() {
				event = event.Str(l.GetName(), l.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				event = event.Float64("value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				event = event.Uint64("count", m.GetHistogram().GetSampleCount()).Float64("sum", m.GetHistogram().GetSampleSum())
			}
			event.Msg("Node RPC metric")
		}
	}
}
