package prices

import (
	"slices"
	"time"
)

// Series is an ordered collection of hourly prices. The order is
// insertion order, which after Combine is not necessarily
// chronological. A Series is never mutated after construction; every
// operation returns new data.
type Series struct {
	entries []Price
}

// NewSeries parses a list of raw backend records into a Series.
func NewSeries(raws []RawPrice) (Series, error) {
	entries := make([]Price, 0, len(raws))
	for _, raw := range raws {
		p, err := NewPrice(raw)
		if err != nil {
			return Series{}, err
		}
		entries = append(entries, p)
	}
	return Series{entries: entries}, nil
}

// FromPrices builds a Series from already parsed entries.
func FromPrices(entries []Price) Series {
	return Series{entries: slices.Clone(entries)}
}

// Combine returns a new Series holding this series' entries followed by
// the other's. Nothing is de-duplicated or re-sorted.
func (s Series) Combine(other Series) Series {
	combined := make([]Price, 0, len(s.entries)+len(other.entries))
	combined = append(combined, s.entries...)
	combined = append(combined, other.entries...)
	return Series{entries: combined}
}

// All returns every entry in insertion order.
func (s Series) All() []Price {
	return slices.Clone(s.entries)
}

// Len is the number of entries.
func (s Series) Len() int {
	return len(s.entries)
}

// ForDay returns the entries that fall within the UTC day containing now.
func (s Series) ForDay(now time.Time) []Price {
	day := make([]Price, 0, len(s.entries))
	for _, p := range s.entries {
		if p.IsToday(now) {
			day = append(day, p)
		}
	}
	return day
}

// CurrentHour returns the entry whose interval contains now. When
// several entries overlap the current hour the first one in series
// order wins. Returns ErrNotFound when no entry matches.
func (s Series) CurrentHour(now time.Time) (Price, error) {
	for _, p := range s.entries {
		if p.IsCurrent(now) {
			return p, nil
		}
	}
	return Price{}, ErrNotFound
}

// MinForDay returns the entry with the lowest total among today's
// entries, first occurrence winning ties. Returns ErrEmptyRange when
// the day has no entries.
func (s Series) MinForDay(now time.Time) (Price, error) {
	day := s.ForDay(now)
	if len(day) == 0 {
		return Price{}, ErrEmptyRange
	}
	min := day[0]
	for _, p := range day[1:] {
		if p.Total() < min.Total() {
			min = p
		}
	}
	return min, nil
}

// MaxForDay returns the entry with the highest total among today's
// entries, first occurrence winning ties. Returns ErrEmptyRange when
// the day has no entries.
func (s Series) MaxForDay(now time.Time) (Price, error) {
	day := s.ForDay(now)
	if len(day) == 0 {
		return Price{}, ErrEmptyRange
	}
	max := day[0]
	for _, p := range day[1:] {
		if p.Total() > max.Total() {
			max = p
		}
	}
	return max, nil
}

// AverageForDay returns the mean of today's totals, rounded to 5
// decimals. Returns ErrEmptyRange when the day has no entries.
func (s Series) AverageForDay(now time.Time) (float64, error) {
	day := s.ForDay(now)
	if len(day) == 0 {
		return 0, ErrEmptyRange
	}
	var sum float64
	for _, p := range day {
		sum += p.Total()
	}
	return roundTo(sum/float64(len(day)), 5), nil
}

// FuturePrices returns the entries for hours after the current one.
func (s Series) FuturePrices(now time.Time) []Price {
	future := make([]Price, 0, len(s.entries))
	for _, p := range s.entries {
		if p.IsFuture(now) {
			future = append(future, p)
		}
	}
	return future
}

// MarketPrices holds the electricity and gas price series returned by
// the price queries.
type MarketPrices struct {
	Electricity Series
	Gas         Series
}
