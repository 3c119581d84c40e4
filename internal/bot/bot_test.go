package bot

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"avnu-swapbot/internal/config"
	"avnu-swapbot/internal/starknet"
)

func setSwapEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvAddress, "0x0123")
	t.Setenv(config.EnvPrivateKey, "0x1234567890abcdef")
	t.Setenv(config.EnvProviderURL, "http://127.0.0.1:1/rpc")
	t.Setenv(config.EnvSellToken, "0x1")
	t.Setenv(config.EnvBuyToken, "0x2")
	t.Setenv(config.EnvSellAmount, "0x64")
	t.Setenv(config.EnvSlippage, "0.005")
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	setSwapEnv(t)
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := LoadConfig(missing, filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Wallet.Address != "0x0123" || cfg.Wallet.PrivateKey != "0x1234567890abcdef" {
		t.Fatalf("expected env wallet, got %+v", cfg.Wallet)
	}
	if cfg.Aggregator.QuoteCount != 3 {
		t.Fatalf("expected default quote count, got %d", cfg.Aggregator.QuoteCount)
	}
}

func TestLoadConfigRejectsIncomplete(t *testing.T) {
	t.Setenv(config.EnvAddress, "")
	t.Setenv(config.EnvSellAmount, "")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), filepath.Join(t.TempDir(), "absent.env"))
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestNewWiresDriver(t *testing.T) {
	setSwapEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	b, err := New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer b.Close()
	if b.Driver == nil || b.Quoter == nil || b.Builder == nil || b.Executor == nil {
		t.Fatalf("expected every stage to be wired")
	}
	if got := b.Driver.Tally(); got.Success != 0 || got.Failed != 0 {
		t.Fatalf("expected fresh counters, got %+v", got)
	}
}

func TestNewRejectsBadPrivateKey(t *testing.T) {
	setSwapEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	cfg.Wallet.PrivateKey = "0xSTARK_PRIVATE_KEY"

	_, err = New(context.Background(), cfg, zerolog.Nop())
	if !errors.Is(err, starknet.ErrInvalidPrivateKey) {
		t.Fatalf("expected invalid private key error, got %v", err)
	}
	if strings.Contains(err.Error(), "STARK_PRIVATE_KEY") {
		t.Fatalf("error must not echo the key: %v", err)
	}
}
