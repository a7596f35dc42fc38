package frank

import (
	"context"
	"encoding/json"
	"math"

	"github.com/angas/frankenergie-go/query"
)

// MonthSummary holds the actual and expected costs for the current
// month up to the last meter reading.
type MonthSummary struct {
	ActualCostsUntilLastMeterReadingDate   float64 `json:"actualCostsUntilLastMeterReadingDate"`
	ExpectedCostsUntilLastMeterReadingDate float64 `json:"expectedCostsUntilLastMeterReadingDate"`
	ExpectedCosts                          float64 `json:"expectedCosts"`
	LastMeterReadingDate                   string  `json:"lastMeterReadingDate"`
}

// DifferenceUntilLastMeterReadingDate is actual minus expected costs,
// rounded to 2 decimals.
func (m MonthSummary) DifferenceUntilLastMeterReadingDate() float64 {
	diff := m.ActualCostsUntilLastMeterReadingDate - m.ExpectedCostsUntilLastMeterReadingDate
	return math.Round(diff*100) / 100
}

// MonthSummary fetches the running cost summary for the current month.
// Requires a session; for Belgium the site reference is resolved first.
func (c *Client) MonthSummary(ctx context.Context) (MonthSummary, error) {
	if c.session == nil {
		return MonthSummary{}, ErrAuthRequired
	}
	if err := c.loadSiteReference(ctx); err != nil {
		return MonthSummary{}, err
	}

	env, err := c.do(ctx, query.OpMonthSummary, c.siteValues())
	if err != nil {
		return MonthSummary{}, err
	}

	payload, err := env.Payload("monthSummary")
	if err != nil {
		return MonthSummary{}, err
	}

	var summary MonthSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return MonthSummary{}, &query.RequestError{Message: "unexpected response"}
	}
	return summary, nil
}
