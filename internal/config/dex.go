// Package config also contains DEX and chain specific configuration surfaces.
package config

import "time"

// Aggregator configures the AVNU HTTP endpoints and quote shaping.
type Aggregator struct {
	BaseURL        string   `yaml:"base_url"`
	QuotePath      string   `yaml:"quote_path"`
	BuildPath      string   `yaml:"build_path"`
	Integrator     string   `yaml:"integrator"`
	QuoteCount     int      `yaml:"quote_count"`
	ExcludeSources []string `yaml:"exclude_sources"`
	TimeoutMs      int      `yaml:"timeout_ms"`
	Headers        Headers  `yaml:"headers"`
}

// Headers are the browser presentation headers replayed on aggregator requests.
type Headers struct {
	AcceptLanguage  string `yaml:"accept_language"`
	SecChUa         string `yaml:"sec_ch_ua"`
	SecChUaPlatform string `yaml:"sec_ch_ua_platform"`
	UserAgent       string `yaml:"user_agent"`
	Origin          string `yaml:"origin"`
	Referer         string `yaml:"referer"`
}

// Chain defines the Starknet node endpoint and transaction submission knobs.
type Chain struct {
	RpcURL              string  `yaml:"rpc_url"`
	CairoVersion        string  `yaml:"cairo_version"` // account contract version, "0" or "1"
	PollIntervalMs      int     `yaml:"poll_interval_ms"`
	ConfirmTimeoutSecs  int     `yaml:"confirm_timeout_secs"` // 0 waits forever
	FeeAmountMultiplier float64 `yaml:"fee_amount_multiplier"`
	FeePriceMultiplier  float64 `yaml:"fee_price_multiplier"`
}

// Wallet stores the account address and env-backed signing material metadata.
type Wallet struct {
	Address    string `yaml:"address"`
	PrivateKey string `yaml:"-"`
}

// Cairo0 reports whether the account is a legacy Cairo 0 contract.
func (c Chain) Cairo0() bool {
	return c.CairoVersion == "0"
}

// PollInterval is the cadence of confirmation status checks.
func (c Chain) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// ConfirmTimeout bounds the confirmation wait; zero means no bound.
func (c Chain) ConfirmTimeout() time.Duration {
	return time.Duration(c.ConfirmTimeoutSecs) * time.Second
}

// Timeout bounds a single aggregator HTTP round trip.
func (a Aggregator) Timeout() time.Duration {
	if a.TimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.TimeoutMs) * time.Millisecond
}
