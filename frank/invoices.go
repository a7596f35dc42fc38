package frank

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angas/frankenergie-go/query"
)

// Invoice is one billing period.
type Invoice struct {
	StartDate         time.Time
	PeriodDescription string
	TotalAmount       float64
}

// Invoices holds the previous, current and upcoming period invoices.
// AllInvoices is only populated by the Belgian variant.
type Invoices struct {
	PreviousPeriodInvoice *Invoice
	CurrentPeriodInvoice  *Invoice
	UpcomingPeriodInvoice *Invoice
	AllInvoices           []Invoice
}

type rawInvoice struct {
	StartDate         string  `json:"StartDate"`
	PeriodDescription string  `json:"PeriodDescription"`
	TotalAmount       float64 `json:"TotalAmount"`
}

type invoicesPayload struct {
	PreviousPeriodInvoice *rawInvoice  `json:"previousPeriodInvoice"`
	CurrentPeriodInvoice  *rawInvoice  `json:"currentPeriodInvoice"`
	UpcomingPeriodInvoice *rawInvoice  `json:"upcomingPeriodInvoice"`
	AllInvoices           []rawInvoice `json:"allInvoices"`
}

// Invoices fetches the previous, current and upcoming invoice. Requires
// a session; for Belgium the site reference is resolved first.
func (c *Client) Invoices(ctx context.Context) (Invoices, error) {
	if c.session == nil {
		return Invoices{}, ErrAuthRequired
	}
	if err := c.loadSiteReference(ctx); err != nil {
		return Invoices{}, err
	}

	env, err := c.do(ctx, query.OpInvoices, c.siteValues())
	if err != nil {
		return Invoices{}, err
	}

	payload, err := env.Payload("invoices")
	if err != nil {
		return Invoices{}, err
	}

	var raw invoicesPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Invoices{}, &query.RequestError{Message: "unexpected response"}
	}

	var invoices Invoices
	if invoices.PreviousPeriodInvoice, err = parseInvoice(raw.PreviousPeriodInvoice); err != nil {
		return Invoices{}, err
	}
	if invoices.CurrentPeriodInvoice, err = parseInvoice(raw.CurrentPeriodInvoice); err != nil {
		return Invoices{}, err
	}
	if invoices.UpcomingPeriodInvoice, err = parseInvoice(raw.UpcomingPeriodInvoice); err != nil {
		return Invoices{}, err
	}
	for _, entry := range raw.AllInvoices {
		invoice, err := parseInvoice(&entry)
		if err != nil {
			return Invoices{}, err
		}
		invoices.AllInvoices = append(invoices.AllInvoices, *invoice)
	}
	return invoices, nil
}

func parseInvoice(raw *rawInvoice) (*Invoice, error) {
	if raw == nil {
		return nil, nil
	}
	startDate, err := time.Parse(time.RFC3339, raw.StartDate)
	if err != nil {
		return nil, &query.RequestError{Message: fmt.Sprintf("bad invoice start date %q", raw.StartDate)}
	}
	return &Invoice{
		StartDate:         startDate,
		PeriodDescription: raw.PeriodDescription,
		TotalAmount:       raw.TotalAmount,
	}, nil
}
