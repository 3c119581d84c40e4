// Package bot wires configuration into a ready swap driver.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	"avnu-swapbot/internal/config"
	"avnu-swapbot/internal/dex/avnu"
	"avnu-swapbot/internal/execution"
	"avnu-swapbot/internal/starknet"
	"avnu-swapbot/internal/swap"
)

// Bot holds the stages of one configured swap and the node connection behind them.
type Bot struct {
	Driver   *swap.Driver
	Quoter   *swap.QuoteFetcher
	Builder  *swap.TxBuilder
	Executor *execution.Executor

	node *starknet.Node
}

// LoadConfig reads path, falling back to defaults when it does not exist, then overlays the environment.
func LoadConfig(path string, envFiles ...string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnv(cfg, envFiles...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// New dials the node and assembles the quote, build and execute stages.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Bot, error) {
	node, err := starknet.Dial(ctx, cfg.Chain.RpcURL)
	if err != nil {
		return nil, err
	}

	signer, err := starknet.NewKeystoreSigner(cfg.Wallet.Address, cfg.Wallet.PrivateKey)
	if err != nil {
		node.Close()
		return nil, err
	}
	account, err := starknet.NewAccount(node, cfg.Wallet.Address, signer, starknet.AccountOptions{
		Cairo0:              cfg.Chain.Cairo0(),
		PollInterval:        cfg.Chain.PollInterval(),
		FeeAmountMultiplier: cfg.Chain.FeeAmountMultiplier,
		FeePriceMultiplier:  cfg.Chain.FeePriceMultiplier,
	})
	if err != nil {
		node.Close()
		return nil, err
	}

	agg := cfg.Aggregator
	client := avnu.NewClient(agg.BaseURL, avnu.Headers{
		AcceptLanguage:  agg.Headers.AcceptLanguage,
		SecChUa:         agg.Headers.SecChUa,
		SecChUaPlatform: agg.Headers.SecChUaPlatform,
		UserAgent:       agg.Headers.UserAgent,
		Origin:          agg.Headers.Origin,
		Referer:         agg.Headers.Referer,
	}, agg.Timeout())
	client.QuotePath = agg.QuotePath
	client.BuildPath = agg.BuildPath
	client.Integrator = agg.Integrator

	req := cfg.Request()
	b := &Bot{
		Quoter:   swap.NewQuoteFetcher(client, req, log.With().Str("stage", "quote").Logger()),
		Builder:  swap.NewTxBuilder(client, req, log.With().Str("stage", "build").Logger()),
		Executor: execution.NewExecutor(account, log.With().Str("stage", "execute").Logger(), execution.WithConfirmTimeout(cfg.Chain.ConfirmTimeout())),
		node:     node,
	}
	b.Driver = swap.NewDriver(b.Quoter, b.Builder, b.Executor, log, swap.WithCooldown(cfg.Cooldown()))
	return b, nil
}

func (b *Bot) Close() {
	if b.node != nil {
		b.node.Close()
	}
}
