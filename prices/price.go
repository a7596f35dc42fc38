package prices

import (
	"fmt"
	"math"
	"time"
)

// RawPrice is a single hourly price record as returned by the backend.
// Pointer fields distinguish absent values from zero values.
type RawPrice struct {
	From                *string  `json:"from"`
	Till                *string  `json:"till"`
	MarketPrice         *float64 `json:"marketPrice"`
	MarketPriceTax      *float64 `json:"marketPriceTax"`
	SourcingMarkupPrice *float64 `json:"sourcingMarkupPrice"`
	EnergyTaxPrice      *float64 `json:"energyTaxPrice"`

	// The Belgian customer price queries use these names instead of the
	// aliased ones above.
	ConsumptionSourcingMarkupPrice *float64 `json:"consumptionSourcingMarkupPrice"`
	EnergyTax                      *float64 `json:"energyTax"`
}

// Price is one hourly price quotation. The [From, Till) interval is
// half-open. Values are in currency per unit (kWh or m3).
type Price struct {
	From                time.Time
	Till                time.Time
	MarketPrice         float64
	MarketPriceTax      float64
	SourcingMarkupPrice float64
	EnergyTaxPrice      float64
}

// NewPrice builds a Price from a raw backend record. A missing field,
// an unparseable timestamp or an inverted interval yields
// ErrMalformedRecord.
func NewPrice(raw RawPrice) (Price, error) {
	if raw.From == nil {
		return Price{}, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, "from")
	}
	if raw.Till == nil {
		return Price{}, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, "till")
	}

	from, err := time.Parse(time.RFC3339, *raw.From)
	if err != nil {
		return Price{}, fmt.Errorf("%w: bad timestamp %q: %v", ErrMalformedRecord, *raw.From, err)
	}
	till, err := time.Parse(time.RFC3339, *raw.Till)
	if err != nil {
		return Price{}, fmt.Errorf("%w: bad timestamp %q: %v", ErrMalformedRecord, *raw.Till, err)
	}
	if till.Before(from) {
		return Price{}, fmt.Errorf("%w: till %s before from %s", ErrMalformedRecord, till, from)
	}

	markup := raw.SourcingMarkupPrice
	if markup == nil {
		markup = raw.ConsumptionSourcingMarkupPrice
	}
	energyTax := raw.EnergyTaxPrice
	if energyTax == nil {
		energyTax = raw.EnergyTax
	}

	if raw.MarketPrice == nil {
		return Price{}, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, "marketPrice")
	}
	if raw.MarketPriceTax == nil {
		return Price{}, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, "marketPriceTax")
	}
	if markup == nil {
		return Price{}, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, "sourcingMarkupPrice")
	}
	if energyTax == nil {
		return Price{}, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, "energyTaxPrice")
	}

	return Price{
		From:                from.UTC(),
		Till:                till.UTC(),
		MarketPrice:         *raw.MarketPrice,
		MarketPriceTax:      *raw.MarketPriceTax,
		SourcingMarkupPrice: *markup,
		EnergyTaxPrice:      *energyTax,
	}, nil
}

func (p Price) String() string {
	return fmt.Sprintf("%s -> %s: %v", p.From, p.Till, p.Total())
}

// Total is the all-in price for this hour, rounded to 4 decimals.
func (p Price) Total() float64 {
	return roundTo(p.MarketPrice+p.MarketPriceTax+p.SourcingMarkupPrice+p.EnergyTaxPrice, 4)
}

// MarketPriceWithTax is the market price including tax, rounded to 4 decimals.
func (p Price) MarketPriceWithTax() float64 {
	return roundTo(p.MarketPrice+p.MarketPriceTax, 4)
}

// IsCurrent reports whether now falls within this entry's interval.
func (p Price) IsCurrent(now time.Time) bool {
	return !now.Before(p.From) && now.Before(p.Till)
}

// IsFuture reports whether this entry starts at a later hour of the day
// than now. The comparison is hour-of-day only, not date-aware, which
// matches the upstream behaviour this client is compatible with.
func (p Price) IsFuture(now time.Time) bool {
	return p.From.Hour() > now.UTC().Hour()
}

// IsToday reports whether this entry falls entirely within the UTC day
// containing now.
func (p Price) IsToday(now time.Time) bool {
	dayStart := now.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)
	return !p.From.Before(dayStart) && !p.Till.After(dayEnd)
}

func roundTo(v float64, decimals int) float64 {
	precision := math.Pow(10, float64(decimals))
	return math.Round(v*precision) / precision
}
