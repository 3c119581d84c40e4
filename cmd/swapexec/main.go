package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"avnu-swapbot/internal/bot"
	"avnu-swapbot/internal/execution"
	"avnu-swapbot/internal/starknet"
	"avnu-swapbot/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to YAML config")
	envFile := flag.String("env", ".env", "optional dotenv file")
	timeout := flag.Duration("timeout", 3*time.Minute, "deadline for the whole cycle")
	dryRun := flag.Bool("dry-run", false, "stop after the build and print the native calls")
	flag.Parse()

	log := util.NewLogger("info")

	cfg, err := bot.LoadConfig(*configPath, *envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLoggerWithOptions(util.LogOptions{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	b, err := bot.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("setup")
	}
	defer b.Close()

	if *dryRun {
		if err := preview(ctx, b); err != nil {
			log.Error().Err(err).Msg("dry run")
			b.Close()
			os.Exit(1)
		}
		return
	}

	if err := b.Driver.Step(ctx); err != nil {
		b.Close()
		os.Exit(1)
	}
}

// preview quotes and builds without submitting, printing each translated call.
func preview(ctx context.Context, b *bot.Bot) error {
	quoteID, err := b.Quoter.Fetch(ctx)
	if err != nil {
		return err
	}
	calls, err := b.Builder.Build(ctx, quoteID)
	if err != nil {
		return err
	}
	native, err := execution.Translate(calls)
	if err != nil {
		return err
	}
	fmt.Printf("quote %s\n", quoteID)
	for i, c := range native {
		fmt.Printf("%d %s %s(%s) %v\n", i, starknet.EncodeFelt(c.To), calls[i].Entrypoint,
			starknet.EncodeFelt(c.Selector), starknet.EncodeFelts(c.Calldata))
	}
	return nil
}
