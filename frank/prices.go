package frank

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/angas/frankenergie-go/prices"
	"github.com/angas/frankenergie-go/query"
)

// Prices fetches the public market prices for electricity and gas. The
// Dutch variant takes a date range, the Belgian variant a single day.
// A "no prices published for this segment" response is an expected
// outcome for future dates and yields empty series, not an error.
func (c *Client) Prices(ctx context.Context, startDate, endDate time.Time) (prices.MarketPrices, error) {
	values := map[string]any{
		"startDate": startDate.Format(dateLayout),
		"endDate":   endDate.Format(dateLayout),
		"date":      startDate.Format(dateLayout),
	}

	env, err := c.do(ctx, query.OpMarketPrices, values)
	if errors.Is(err, query.ErrNoPricesForSegment) {
		return prices.MarketPrices{}, nil
	}
	if err != nil {
		return prices.MarketPrices{}, err
	}

	if c.country == query.Belgium {
		return nestedMarketPrices(env, "marketPrices")
	}
	return siblingMarketPrices(env)
}

// UserPrices fetches the customer-specific prices for one day. Requires
// a session; for Belgium the site reference is resolved first.
func (c *Client) UserPrices(ctx context.Context, date time.Time) (prices.MarketPrices, error) {
	if c.session == nil {
		return prices.MarketPrices{}, ErrAuthRequired
	}
	if err := c.loadSiteReference(ctx); err != nil {
		return prices.MarketPrices{}, err
	}

	values := map[string]any{"date": date.Format(dateLayout)}
	for k, v := range c.siteValues() {
		values[k] = v
	}

	env, err := c.do(ctx, query.OpCustomerMarketPrices, values)
	if errors.Is(err, query.ErrNoPricesForSegment) {
		return prices.MarketPrices{}, nil
	}
	if err != nil {
		return prices.MarketPrices{}, err
	}

	return nestedMarketPrices(env, "customerMarketPrices")
}

// siblingMarketPrices maps the Dutch market price envelope, which
// carries the electricity and gas arrays as sibling payload keys.
func siblingMarketPrices(env query.Envelope) (prices.MarketPrices, error) {
	data, err := env.DataKeys()
	if err != nil {
		return prices.MarketPrices{}, err
	}

	electricity, err := decodeSeries(data["marketPricesElectricity"])
	if err != nil {
		return prices.MarketPrices{}, err
	}
	gas, err := decodeSeries(data["marketPricesGas"])
	if err != nil {
		return prices.MarketPrices{}, err
	}
	return prices.MarketPrices{Electricity: electricity, Gas: gas}, nil
}

// nestedMarketPrices maps the envelopes that nest both arrays under one
// payload key (Belgian market prices, customer prices everywhere).
func nestedMarketPrices(env query.Envelope, key string) (prices.MarketPrices, error) {
	payload, err := env.Payload(key)
	if err != nil {
		return prices.MarketPrices{}, err
	}

	var raw struct {
		ElectricityPrices []prices.RawPrice `json:"electricityPrices"`
		GasPrices         []prices.RawPrice `json:"gasPrices"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return prices.MarketPrices{}, &query.RequestError{Message: "unexpected response"}
	}

	electricity, err := prices.NewSeries(raw.ElectricityPrices)
	if err != nil {
		return prices.MarketPrices{}, err
	}
	gas, err := prices.NewSeries(raw.GasPrices)
	if err != nil {
		return prices.MarketPrices{}, err
	}
	return prices.MarketPrices{Electricity: electricity, Gas: gas}, nil
}

func decodeSeries(raw json.RawMessage) (prices.Series, error) {
	if len(raw) == 0 {
		return prices.Series{}, &query.RequestError{Message: "unexpected response"}
	}
	var records []prices.RawPrice
	if err := json.Unmarshal(raw, &records); err != nil {
		return prices.Series{}, &query.RequestError{Message: "unexpected response"}
	}
	return prices.NewSeries(records)
}
