package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys read at startup. Values found here win over the YAML file.
const (
	EnvAddress         = "ADDRESS"
	EnvPrivateKey      = "PRIVATE_KEY"
	EnvProviderURL     = "PROVIDER_URL"
	EnvSellToken       = "SELL_TOKEN_ADDRESS"
	EnvBuyToken        = "BUY_TOKEN_ADDRESS"
	EnvSellAmount      = "SELL_AMOUNT"
	EnvSlippage        = "SLIPPAGE"
	EnvAcceptLanguage  = "ACCEPT_LANGUAGE"
	EnvSecChUa         = "SEC_CH_UA"
	EnvSecChUaPlatform = "SEC_CH_UA_PLATFORM"
	EnvUserAgent       = "USER_AGENT"
)

// LoadEnv loads an optional .env file and overlays process environment values onto cfg.
func LoadEnv(cfg *Config, files ...string) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	_ = godotenv.Load(files...) // best-effort

	setString(&cfg.Wallet.Address, EnvAddress)
	setString(&cfg.Wallet.PrivateKey, EnvPrivateKey)
	setString(&cfg.Chain.RpcURL, EnvProviderURL)
	setString(&cfg.Swap.SellToken, EnvSellToken)
	setString(&cfg.Swap.BuyToken, EnvBuyToken)
	setString(&cfg.Swap.SellAmount, EnvSellAmount)
	setString(&cfg.Aggregator.Headers.AcceptLanguage, EnvAcceptLanguage)
	setString(&cfg.Aggregator.Headers.SecChUa, EnvSecChUa)
	setString(&cfg.Aggregator.Headers.SecChUaPlatform, EnvSecChUaPlatform)
	setString(&cfg.Aggregator.Headers.UserAgent, EnvUserAgent)

	if raw := strings.TrimSpace(os.Getenv(EnvSlippage)); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvSlippage, err)
		}
		cfg.Swap.Slippage = v
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
