package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/angas/frankenergie-go/prices"
)

// PriceFetcher is the slice of the client the refresh task needs.
type PriceFetcher interface {
	Prices(ctx context.Context, startDate, endDate time.Time) (prices.MarketPrices, error)
}

// NewMarketPriceTask returns a task func that fetches today's and
// tomorrow's market prices as one combined pair and hands them to
// onUpdate. Days with no published prices yield empty series, so the
// combined result may be shorter than two full days.
func NewMarketPriceTask(logger *slog.Logger, fetcher PriceFetcher, onUpdate func(prices.MarketPrices)) func() {
	return func() { runMarketPriceTask(logger, fetcher, onUpdate) }
}

func runMarketPriceTask(logger *slog.Logger, fetcher PriceFetcher, onUpdate func(prices.MarketPrices)) {
	logger.Debug("running market price task...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	tomorrow := today.AddDate(0, 0, 1)

	current, err := fetcher.Prices(ctx, today, tomorrow)
	if err != nil {
		logger.Error("error fetching market prices for today", slog.Any("error", err))
		return
	}

	upcoming, err := fetcher.Prices(ctx, tomorrow, tomorrow.AddDate(0, 0, 1))
	if err != nil {
		logger.Error("error fetching market prices for tomorrow", slog.Any("error", err))
		return
	}

	combined := prices.MarketPrices{
		Electricity: current.Electricity.Combine(upcoming.Electricity),
		Gas:         current.Gas.Combine(upcoming.Gas),
	}
	onUpdate(combined)

	logger.Info("market price task done",
		slog.Int("electricityHours", combined.Electricity.Len()),
		slog.Int("gasHours", combined.Gas.Len()))
}
