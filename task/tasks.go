// Package task schedules recurring fetches against the backend.
package task

import (
	"context"
	"log/slog"

	"github.com/angas/frankenergie-go/prices"
	"github.com/robfig/cron/v3"
)

type Tasks struct {
	cron            *cron.Cron
	runAt           string
	MarketPriceTask func()
}

// NewTasks wires the market price refresh task. runAt is a cron
// expression, e.g. "5 * * * *" or "@hourly".
func NewTasks(fetcher PriceFetcher, runAt string, onUpdate func(prices.MarketPrices)) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		runAt:           runAt,
		MarketPriceTask: NewMarketPriceTask(logger.With(slog.String("task", "market_price")), fetcher, onUpdate),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.runAt, t.MarketPriceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
