package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	API struct {
		// BaseURL of the Elsa x402 API, e.g. https://api.heyelsa.ai
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"api"`

	Payment struct {
		// PrivateKey is the hex-encoded key of the paying account. Set via
		// the PAYMENT_PRIVATE_KEY environment variable, never in the file.
		PrivateKey string `mapstructure:"private_key"`
		Network    string `mapstructure:"network"`
		RPCURL     string `mapstructure:"rpc_url"`
	} `mapstructure:"payment"`

	Budget struct {
		DailyCapUSD    float64 `mapstructure:"daily_cap_usd"`
		CallsPerMinute int     `mapstructure:"calls_per_minute"`
	} `mapstructure:"budget"`

	Audit struct {
		// FilePath of the JSONL audit stream; empty disables it.
		FilePath string `mapstructure:"file_path"`
		// DBPath of the SQLite audit store; empty disables it.
		DBPath string `mapstructure:"db_path"`
	} `mapstructure:"audit"`

	Pricing struct {
		DefaultCostUSD float64 `mapstructure:"default_cost_usd"`
		// Endpoints overrides the compiled-in per-call estimates.
		Endpoints map[string]float64 `mapstructure:"endpoints"`
	} `mapstructure:"pricing"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("api.base_url", "https://api.heyelsa.ai")
	viper.SetDefault("api.timeout_seconds", 60)
	viper.SetDefault("payment.network", "base")
	viper.SetDefault("budget.daily_cap_usd", 10.0)
	viper.SetDefault("budget.calls_per_minute", 10)
	viper.SetDefault("audit.file_path", "audit.log")
	viper.SetDefault("audit.db_path", "audit.db")

	// Secrets and deployment-specific values come from the environment.
	viper.AutomaticEnv()
	viper.BindEnv("api.base_url", "ELSA_API_URL")
	viper.BindEnv("payment.private_key", "PAYMENT_PRIVATE_KEY")
	viper.BindEnv("payment.network", "PAYMENT_NETWORK")
	viper.BindEnv("payment.rpc_url", "BASE_RPC_URL")

	if err := viper.ReadInConfig(); err != nil {
		// Running without a config file is fine; env vars and defaults carry.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
