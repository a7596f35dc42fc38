package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angas/frankenergie-go/config"
	"github.com/angas/frankenergie-go/frank"
	"github.com/angas/frankenergie-go/prices"
	"github.com/angas/frankenergie-go/task"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	configPath := flag.String("config", "", "path to config file")
	watch := flag.Bool("watch", false, "keep running and refresh prices on the configured schedule")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)
	logger.Debug("frankctl is starting...", slog.String("version", Version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []frank.Option{frank.WithLogger(logger)}
	if cnfg.Auth.HasTokens() {
		opts = append(opts, frank.WithTokens(*cnfg.Auth.AuthToken, *cnfg.Auth.RefreshToken))
	}
	client := frank.New(cnfg.GetCountry(), opts...)
	defer client.Close()

	if !client.IsAuthenticated() && cnfg.Auth.HasCredentials() {
		if _, err := client.Login(ctx, cnfg.Auth.Email, cnfg.Auth.Password); err != nil {
			exitWithError(logger, fmt.Errorf("login failed: %w", err))
		}
		logger.Info("logged in", slog.String("email", cnfg.Auth.Email))
	}

	refresh := task.NewMarketPriceTask(
		logger.With(slog.String("task", "market_price")),
		client,
		func(mp prices.MarketPrices) { printSummary(logger, mp) })
	refresh()

	if !*watch {
		return
	}

	tasks := task.NewTasks(client, cnfg.Prices.GetRunAt(), func(mp prices.MarketPrices) {
		printSummary(logger, mp)
	})
	tasks.Run()
	defer tasks.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down...", slog.Any("signal", sig))
}

func printSummary(logger *slog.Logger, mp prices.MarketPrices) {
	now := time.Now().UTC()

	if current, err := mp.Electricity.CurrentHour(now); err == nil {
		logger.Info("current electricity price",
			slog.Float64("total", current.Total()),
			slog.Float64("market", current.MarketPrice))
	}
	min, minErr := mp.Electricity.MinForDay(now)
	max, maxErr := mp.Electricity.MaxForDay(now)
	avg, avgErr := mp.Electricity.AverageForDay(now)
	if minErr == nil && maxErr == nil && avgErr == nil {
		logger.Info("electricity today",
			slog.Float64("min", min.Total()),
			slog.Float64("max", max.Total()),
			slog.Float64("avg", avg))
	}
	if avg, err := mp.Gas.AverageForDay(now); err == nil {
		logger.Info("gas today", slog.Float64("avg", avg))
	}
}

func exitWithError(logger *slog.Logger, err error) {
	logger.Error("frankctl shutting down with error", slog.Any("error", err))
	os.Exit(1)
}
