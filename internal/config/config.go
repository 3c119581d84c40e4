// Package config exposes strongly typed application configuration structs loaded from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"avnu-swapbot/internal/dex/avnu"
	"avnu-swapbot/internal/swap"
)

// App captures process-wide runtime settings such as name, metrics, and logging.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"` // json|console
	LogFile     string `yaml:"log_file"`
}

// Swap describes the single trading pair the bot cycles on.
type Swap struct {
	SellToken    string  `yaml:"sell_token"`
	BuyToken     string  `yaml:"buy_token"`
	SellAmount   string  `yaml:"sell_amount"` // hex or decimal, smallest units
	Slippage     float64 `yaml:"slippage"`    // fraction, 0.005 == 0.5%
	CooldownSecs int     `yaml:"cooldown_secs"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App        App        `yaml:"app"`
	Aggregator Aggregator `yaml:"aggregator"`
	Chain      Chain      `yaml:"chain"`
	Wallet     Wallet     `yaml:"wallet"`
	Swap       Swap       `yaml:"swap"`
}

const (
	defaultPollInterval  = 2 * time.Second
	defaultFeeMultiplier = 1.5
)

// Load reads a YAML file from disk and hydrates a Config struct with defaults applied.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	config.applyDefaults()
	return &config, nil
}

// Default returns a Config populated only with defaults, for env-only deployments.
func Default() *Config {
	var config Config
	config.applyDefaults()
	return &config
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "avnu-swapbot"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Aggregator.BaseURL == "" {
		c.Aggregator.BaseURL = avnu.DefaultBase
	}
	if c.Aggregator.QuotePath == "" {
		c.Aggregator.QuotePath = avnu.DefaultQuotePath
	}
	if c.Aggregator.BuildPath == "" {
		c.Aggregator.BuildPath = avnu.DefaultBuildPath
	}
	if c.Aggregator.Integrator == "" {
		c.Aggregator.Integrator = avnu.DefaultIntegrator
	}
	if c.Aggregator.QuoteCount <= 0 {
		c.Aggregator.QuoteCount = swap.DefaultQuoteCount
	}
	// nil means unset; an explicit empty list in YAML disables the blocklist.
	if c.Aggregator.ExcludeSources == nil {
		c.Aggregator.ExcludeSources = append([]string(nil), swap.DefaultExcludeSources...)
	}
	if c.Chain.CairoVersion == "" {
		c.Chain.CairoVersion = "1"
	}
	if c.Chain.PollIntervalMs <= 0 {
		c.Chain.PollIntervalMs = int(defaultPollInterval / time.Millisecond)
	}
	if c.Chain.FeeAmountMultiplier <= 0 {
		c.Chain.FeeAmountMultiplier = defaultFeeMultiplier
	}
	if c.Chain.FeePriceMultiplier <= 0 {
		c.Chain.FeePriceMultiplier = defaultFeeMultiplier
	}
	if c.Swap.CooldownSecs <= 0 {
		c.Swap.CooldownSecs = int(swap.DefaultCooldown / time.Second)
	}
}

// Validate reports every missing or out-of-range setting the swap loop depends on.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Wallet.Address) == "" {
		errs = append(errs, errors.New("wallet address is required"))
	}
	if strings.TrimSpace(c.Chain.RpcURL) == "" {
		errs = append(errs, errors.New("chain rpc url is required"))
	}
	if strings.TrimSpace(c.Swap.SellToken) == "" {
		errs = append(errs, errors.New("sell token is required"))
	}
	if strings.TrimSpace(c.Swap.BuyToken) == "" {
		errs = append(errs, errors.New("buy token is required"))
	}
	if strings.TrimSpace(c.Swap.SellAmount) == "" {
		errs = append(errs, errors.New("sell amount is required"))
	}
	if c.Swap.Slippage <= 0 || c.Swap.Slippage >= 1 {
		errs = append(errs, fmt.Errorf("slippage %.4f must be a fraction in (0, 1)", c.Swap.Slippage))
	}
	if c.Chain.CairoVersion != "0" && c.Chain.CairoVersion != "1" {
		errs = append(errs, fmt.Errorf("unsupported cairo version %q", c.Chain.CairoVersion))
	}
	return errors.Join(errs...)
}

// Cooldown is the pause inserted after a failed cycle.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Swap.CooldownSecs) * time.Second
}

// Request is the swap every cycle repeats, taken by the configured wallet.
func (c *Config) Request() swap.Request {
	return swap.Request{
		SellToken:      c.Swap.SellToken,
		BuyToken:       c.Swap.BuyToken,
		SellAmount:     c.Swap.SellAmount,
		Taker:          c.Wallet.Address,
		Slippage:       c.Swap.Slippage,
		QuoteCount:     c.Aggregator.QuoteCount,
		ExcludeSources: c.Aggregator.ExcludeSources,
	}
}
