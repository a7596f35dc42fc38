package query

import (
	"fmt"
	"maps"
)

// Country selects the per-country query variant. The value doubles as
// the X-Country request header.
type Country string

const (
	Netherlands Country = "NL"
	Belgium     Country = "BE"
)

// Operation names a supported backend operation.
type Operation string

const (
	OpLogin                Operation = "Login"
	OpRenewToken           Operation = "RenewToken"
	OpMe                   Operation = "Me"
	OpMonthSummary         Operation = "MonthSummary"
	OpInvoices             Operation = "Invoices"
	OpMarketPrices         Operation = "MarketPrices"
	OpCustomerMarketPrices Operation = "CustomerMarketPrices"
)

// Descriptor pairs a GraphQL document with its variable contract for
// one (operation, country) combination.
type Descriptor struct {
	// Document is the GraphQL text sent on the wire.
	Document string
	// OperationName is the wire-level operationName, which does not
	// always match the Operation (the Belgian customer price query
	// reuses "MarketPrices").
	OperationName string
	// Required lists variables that must be bound at request time.
	Required []string
	// Defaults holds variables always present in the request, possibly
	// null, that runtime values may override.
	Defaults map[string]any
}

type tableKey struct {
	op      Operation
	country Country
}

var descriptors = map[tableKey]Descriptor{
	{OpLogin, Netherlands}: {
		Document:      loginDocument,
		OperationName: "Login",
		Required:      []string{"email", "password"},
	},
	{OpLogin, Belgium}: {
		Document:      loginDocument,
		OperationName: "Login",
		Required:      []string{"email", "password"},
	},
	{OpRenewToken, Netherlands}: {
		Document:      renewTokenDocument,
		OperationName: "RenewToken",
		Required:      []string{"authToken", "refreshToken"},
	},
	{OpRenewToken, Belgium}: {
		Document:      renewTokenDocument,
		OperationName: "RenewToken",
		Required:      []string{"authToken", "refreshToken"},
	},
	{OpMe, Netherlands}: {
		Document:      meDocumentNL,
		OperationName: "Me",
	},
	{OpMe, Belgium}: {
		Document:      meDocumentBE,
		OperationName: "Me",
		Defaults:      map[string]any{"siteReference": nil},
	},
	{OpMonthSummary, Netherlands}: {
		Document:      monthSummaryDocumentNL,
		OperationName: "MonthSummary",
	},
	{OpMonthSummary, Belgium}: {
		Document:      monthSummaryDocumentBE,
		OperationName: "MonthSummary",
		Required:      []string{"siteReference"},
	},
	{OpInvoices, Netherlands}: {
		Document:      invoicesDocumentNL,
		OperationName: "Invoices",
	},
	{OpInvoices, Belgium}: {
		Document:      invoicesDocumentBE,
		OperationName: "Invoices",
		Required:      []string{"siteReference"},
	},
	{OpMarketPrices, Netherlands}: {
		Document:      marketPricesDocumentNL,
		OperationName: "MarketPrices",
		Required:      []string{"startDate", "endDate"},
	},
	{OpMarketPrices, Belgium}: {
		Document:      marketPricesDocumentBE,
		OperationName: "MarketPrices",
		Required:      []string{"date"},
	},
	{OpCustomerMarketPrices, Netherlands}: {
		Document:      customerMarketPricesDocumentNL,
		OperationName: "CustomerMarketPrices",
		Required:      []string{"date"},
	},
	{OpCustomerMarketPrices, Belgium}: {
		Document:      customerMarketPricesDocumentBE,
		OperationName: "MarketPrices",
		Required:      []string{"date", "siteReference"},
	},
}

// Lookup returns the descriptor for an (operation, country) pair, or
// ErrUnsupportedOperation when the pair is not in the table.
func Lookup(op Operation, country Country) (Descriptor, error) {
	d, ok := descriptors[tableKey{op, country}]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s for %s", ErrUnsupportedOperation, op, country)
	}
	return d, nil
}

// Request is the wire-level GraphQL request body.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Bind merges runtime values into the descriptor's variable template.
// Only variables the descriptor declares end up on the wire; a missing
// or nil required value yields ErrMissingVariable.
func (d Descriptor) Bind(values map[string]any) (Request, error) {
	vars := make(map[string]any, len(d.Defaults)+len(d.Required))
	maps.Copy(vars, d.Defaults)

	for name := range d.Defaults {
		if v, ok := values[name]; ok {
			vars[name] = v
		}
	}

	for _, name := range d.Required {
		v, ok := values[name]
		if !ok || v == nil || v == "" {
			return Request{}, fmt.Errorf("%w: %q", ErrMissingVariable, name)
		}
		vars[name] = v
	}

	return Request{
		Query:         d.Document,
		OperationName: d.OperationName,
		Variables:     vars,
	}, nil
}
