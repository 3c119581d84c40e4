package main

import (
	"context"
	"flag"
	"os"
	ossignal "os/signal"
	"syscall"

	"avnu-swapbot/internal/bot"
	"avnu-swapbot/internal/metrics"
	"avnu-swapbot/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to YAML config")
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	log := util.NewLogger("info")

	cfg, err := bot.LoadConfig(*configPath, *envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLoggerWithOptions(util.LogOptions{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		File:   cfg.App.LogFile,
	}).With().Str("app", cfg.App.Name).Logger()

	if cfg.App.MetricsAddr != "" {
		srv, err := metrics.Serve(cfg.App.MetricsAddr)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.App.MetricsAddr).Msg("metrics listen")
		}
		defer srv.Close()
		log.Info().Str("addr", srv.Addr).Msg("metrics up")
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := bot.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("setup")
	}
	defer b.Close()

	log.Info().
		Str("sell", cfg.Swap.SellToken).
		Str("buy", cfg.Swap.BuyToken).
		Str("amount", cfg.Swap.SellAmount).
		Float64("slippage", cfg.Swap.Slippage).
		Dur("cooldown", cfg.Cooldown()).
		Msg("swap loop started")

	_ = b.Driver.Run(ctx)

	tally := b.Driver.Tally()
	log.Info().Uint64("success", tally.Success).Uint64("failed", tally.Failed).Msg("shutting down")
}
