package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/go-xwc/cmd/keys"
	"github/chapool/go-xwc/cmd/probe"
	"github/chapool/go-xwc/cmd/tx"
	"github/chapool/go-xwc/internal/config"
	"github/chapool/go-xwc/internal/util"
	"github/chapool/go-xwc/internal/util/command"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "xwc",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Builds and signs transactions for the XWC chain without handing private keys
to any server. Configuration is read from flags, an optional config file and
XWC_* environment variables (.env is loaded when present).`, config.ModuleName),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()

	for key, flag := range map[string]string{
		config.KeyNetwork:          "network",
		config.KeyChainID:          "chain-id",
		config.KeyNodeEndpoint:     "node",
		config.KeyNodeTimeout:      "node-timeout",
		config.KeyExpirationWindow: "expiration",
		config.KeyLogLevel:         "log-level",
		config.KeyLogPretty:        "log-pretty",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	logger := command.SetupLogger(cfg.Logger)

	ctx := util.WithLogger(cmd.Context(), logger)
	cmd.SetContext(command.WithConfig(ctx, cfg))

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	defaults := config.DefaultConfigFromEnv()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (yaml, toml or json)")
	flags.String("network", defaults.Network, "Network preset: mainnet or testnet")
	flags.String("chain-id", defaults.ChainID, "Hex chain id, overrides the network preset")
	flags.String("node", defaults.Node.Endpoint, "Node websocket endpoint")
	flags.Duration("node-timeout", defaults.Node.Timeout, "Timeout for each node call")
	flags.Duration("expiration", defaults.Node.ExpirationWindow, "Transaction expiration window")
	flags.String("log-level", defaults.Logger.Level.String(), "Log level")
	flags.Bool("log-pretty", defaults.Logger.PrettyPrintConsole, "Human readable logs on stderr")

	// attach the subcommands
	rootCmd.AddCommand(
		keys.New(),
		tx.New(),
		probe.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
