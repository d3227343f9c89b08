package command

import (
	"context"

	"github/chapool/go-xwc/internal/config"
)

type configKey struct{}

// WithConfig attaches the loaded configuration to ctx.
func WithConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration attached by WithConfig, or the
// env derived defaults when none is attached.
func ConfigFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
		return cfg
	}
	return config.DefaultConfigFromEnv()
}
