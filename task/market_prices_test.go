package task

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/angas/frankenergie-go/prices"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls   []time.Time
	perCall int
	err     error
}

func (f *fakeFetcher) Prices(ctx context.Context, startDate, endDate time.Time) (prices.MarketPrices, error) {
	f.calls = append(f.calls, startDate)
	if f.err != nil {
		return prices.MarketPrices{}, f.err
	}
	entries := make([]prices.Price, 0, f.perCall)
	for i := 0; i < f.perCall; i++ {
		from := startDate.Add(time.Duration(i) * time.Hour)
		entries = append(entries, prices.Price{From: from, Till: from.Add(time.Hour)})
	}
	series := prices.FromPrices(entries)
	return prices.MarketPrices{Electricity: series, Gas: series}, nil
}

func TestMarketPriceTaskCombinesTodayAndTomorrow(t *testing.T) {
	fetcher := &fakeFetcher{perCall: 24}

	var got prices.MarketPrices
	updates := 0
	taskFn := NewMarketPriceTask(slog.Default(), fetcher, func(mp prices.MarketPrices) {
		got = mp
		updates++
	})
	taskFn()

	require.Equal(t, 1, updates)
	require.Len(t, fetcher.calls, 2)
	assert.Equal(t, fetcher.calls[0].AddDate(0, 0, 1), fetcher.calls[1])
	assert.Equal(t, 48, got.Electricity.Len())
	assert.Equal(t, 48, got.Gas.Len())
}

func TestMarketPriceTaskSkipsUpdateOnError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("backend down")}

	updates := 0
	taskFn := NewMarketPriceTask(slog.Default(), fetcher, func(prices.MarketPrices) { updates++ })
	taskFn()

	assert.Zero(t, updates)
}
