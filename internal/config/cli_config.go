package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"github/chapool/go-xwc/internal/util"
)

// Keys shared by viper, the config file and the root command's flags.
const (
	KeyNetwork          = "network"
	KeyChainID          = "chain-id"
	KeyNodeEndpoint     = "node.endpoint"
	KeyNodeTimeout      = "node.timeout"
	KeyExpirationWindow = "node.expiration"
	KeyLogLevel         = "log.level"
	KeyLogPretty        = "log.pretty"
)

const (
	DefaultNodeEndpoint     = "ws://127.0.0.1:8090"
	DefaultNodeTimeout      = 10 * time.Second
	DefaultExpirationWindow = 60 * time.Second
)

type Logger struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

type Node struct {
	Endpoint string
	Timeout  time.Duration
	// ExpirationWindow is added to the current time to form a transaction's expiration.
	ExpirationWindow time.Duration
}

// Config is the command line tool's configuration.
type Config struct {
	Network string
	// ChainID overrides the network preset when set.
	ChainID string
	Node    Node
	Logger  Logger
}

// DefaultConfigFromEnv reads XWC_* variables, loading .env from the working
// directory first if present.
func DefaultConfigFromEnv() Config {
	loadDotEnv(".env")

	return Config{
		Network: util.GetEnv("XWC_NETWORK", NetworkMainnet),
		ChainID: util.GetEnv("XWC_CHAIN_ID", ""),
		Node: Node{
			Endpoint:         util.GetEnv("XWC_NODE_ENDPOINT", DefaultNodeEndpoint),
			Timeout:          util.GetEnvAsDuration("XWC_NODE_TIMEOUT", DefaultNodeTimeout),
			ExpirationWindow: util.GetEnvAsDuration("XWC_TX_EXPIRATION", DefaultExpirationWindow),
		},
		Logger: Logger{
			Level:              logLevelFromString(util.GetEnv("XWC_LOG_LEVEL", zerolog.InfoLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("XWC_LOG_PRETTY", true),
		},
	}
}

// SetDefaults registers the env derived defaults with v so flags and an
// optional config file can override them.
func SetDefaults(v *viper.Viper, defaults Config) {
	v.SetDefault(KeyNetwork, defaults.Network)
	v.SetDefault(KeyChainID, defaults.ChainID)
	v.SetDefault(KeyNodeEndpoint, defaults.Node.Endpoint)
	v.SetDefault(KeyNodeTimeout, defaults.Node.Timeout)
	v.SetDefault(KeyExpirationWindow, defaults.Node.ExpirationWindow)
	v.SetDefault(KeyLogLevel, defaults.Logger.Level.String())
	v.SetDefault(KeyLogPretty, defaults.Logger.PrettyPrintConsole)
}

// Load resolves the configuration from v. Precedence: flags, config file,
// environment, built-in defaults.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v, DefaultConfigFromEnv())

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}

	level, err := zerolog.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid %s", KeyLogLevel)
	}

	cfg := Config{
		Network: v.GetString(KeyNetwork),
		ChainID: v.GetString(KeyChainID),
		Node: Node{
			Endpoint:         v.GetString(KeyNodeEndpoint),
			Timeout:          v.GetDuration(KeyNodeTimeout),
			ExpirationWindow: v.GetDuration(KeyExpirationWindow),
		},
		Logger: Logger{
			Level:              level,
			PrettyPrintConsole: v.GetBool(KeyLogPretty),
		},
	}

	if cfg.Node.ExpirationWindow <= 0 {
		return Config{}, errors.Errorf("%s must be positive, got %s", KeyExpirationWindow, cfg.Node.ExpirationWindow)
	}

	return cfg, nil
}

// ResolveNetwork returns the network preset with the configured chain id applied.
// The result may still lack a chain id; callers fetch one from the node then.
func (c Config) ResolveNetwork() (Network, error) {
	n, err := NetworkByName(c.Network)
	if err != nil {
		return Network{}, err
	}
	if c.ChainID != "" {
		n.ChainID = strings.ToLower(c.ChainID)
	}
	return n, nil
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := gotenv.Load(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to load .env file")
	}
}

func logLevelFromString(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
