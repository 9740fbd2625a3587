package config

// LedgerConfig represents the ledger configuration.
type LedgerConfig struct {
	// GenesisFile points at the YAML list of initial outputs seeded into an
	// empty store at startup.
	GenesisFile string `mapstructure:"genesis_file"`
	// Authorities is the standing set of reward-eligible keys (hex), used
	// when a finalize request does not carry its own set.
	Authorities []string `mapstructure:"authorities"`
	// MempoolCapacity bounds the pending-transaction pool.
	MempoolCapacity int `mapstructure:"mempool_capacity"`
}

// DatabaseConfig represents the database configuration.
type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// WebhookConfig represents the transaction-success webhook configuration.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// LoggerConfig represents the logger configuration.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	PrettyPrint bool   `mapstructure:"pretty_print"`
}

// ServerConfig represents the node configuration.
type ServerConfig struct {
	Name             string         `mapstructure:"name"`
	Address          string         `mapstructure:"address"`
	Port             int            `mapstructure:"port"`
	AdminBearerToken string         `mapstructure:"admin_bearer_token"`
	LedgerConfig     LedgerConfig   `mapstructure:"ledger_config"`
	DatabaseConfig   DatabaseConfig `mapstructure:"database_config"`
	WebhookConfig    WebhookConfig  `mapstructure:"webhook_config"`
	LoggerConfig     LoggerConfig   `mapstructure:"logger_config"`
}

// DefaultConfig returns the default node configuration.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Name:    "utxod",
		Address: "localhost",
		Port:    3000,
		LedgerConfig: LedgerConfig{
			GenesisFile:     "genesis.yaml",
			MempoolCapacity: 1024,
		},
		DatabaseConfig: DatabaseConfig{
			Enabled: false,
			URL:     "",
		},
		WebhookConfig: WebhookConfig{
			Enabled: false,
			URL:     "",
		},
		LoggerConfig: LoggerConfig{
			Level:       "debug",
			Format:      "json",
			PrettyPrint: true,
		},
	}
}
