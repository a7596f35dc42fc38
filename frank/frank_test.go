package frank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angas/frankenergie-go/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// newTestClient starts a mock backend and returns a client pointed at it.
func newTestClient(t *testing.T, country query.Country, handler func(t *testing.T, r *http.Request, req wireRequest) any, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(handler(t, r, req)))
	}))
	t.Cleanup(srv.Close)

	opts = append(opts, WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	return New(country, opts...)
}

// priceEntries builds n consecutive hourly records starting at midnight
// of the given day.
func priceEntries(t *testing.T, date string, n int) []map[string]any {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	entries := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		from := day.Add(time.Duration(i) * time.Hour)
		entries = append(entries, map[string]any{
			"from":                from.Format(time.RFC3339),
			"till":                from.Add(time.Hour).Format(time.RFC3339),
			"marketPrice":         0.20 + float64(i)/100,
			"marketPriceTax":      0.042,
			"sourcingMarkupPrice": 0.0175,
			"energyTaxPrice":      0.125,
		})
	}
	return entries
}

func loginResponse(authToken, refreshToken string) map[string]any {
	return map[string]any{"data": map[string]any{"login": map[string]any{
		"authToken":    authToken,
		"refreshToken": refreshToken,
	}}}
}

func TestPricesTwoDaysCombined(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		assert.Equal(t, "NL", r.Header.Get("X-Country"))
		assert.Empty(t, r.Header.Get("Authorization"), "public price queries carry no bearer token")
		require.Equal(t, "MarketPrices", req.OperationName)

		day := req.Variables["startDate"].(string)
		return map[string]any{"data": map[string]any{
			"marketPricesElectricity": priceEntries(t, day, 24),
			"marketPricesGas":         priceEntries(t, day, 24),
		}}
	})
	defer client.Close()

	ctx := context.Background()
	day1 := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	first, err := client.Prices(ctx, day1, day2)
	require.NoError(t, err)
	second, err := client.Prices(ctx, day2, day2.AddDate(0, 0, 1))
	require.NoError(t, err)

	combined := first.Electricity.Combine(second.Electricity)
	all := combined.All()
	require.Len(t, all, 48)

	// Fetch order is preserved: first day's hours, then the second's.
	assert.Equal(t, day1, all[0].From)
	assert.Equal(t, day2, all[24].From)
}

func TestPricesBelgiumNestedEnvelope(t *testing.T) {
	client := newTestClient(t, query.Belgium, func(t *testing.T, r *http.Request, req wireRequest) any {
		assert.Equal(t, "BE", r.Header.Get("X-Country"))
		require.Equal(t, "MarketPrices", req.OperationName)
		require.Equal(t, "2025-06-15", req.Variables["date"])
		_, hasRange := req.Variables["startDate"]
		assert.False(t, hasRange, "the Belgian variant takes a single date")

		return map[string]any{"data": map[string]any{"marketPrices": map[string]any{
			"electricityPrices": priceEntries(t, "2025-06-15", 24),
			"gasPrices":         priceEntries(t, "2025-06-15", 24),
		}}}
	})
	defer client.Close()

	day := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	mp, err := client.Prices(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 24, mp.Electricity.Len())
	assert.Equal(t, 24, mp.Gas.Len())
}

func TestNoPricesForSegmentYieldsEmptyResult(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		return map[string]any{"errors": []map[string]any{
			{"message": "No marketprices found for segment GAS from 2025-06-16 till 2025-06-17"},
		}}
	})
	defer client.Close()

	day := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	mp, err := client.Prices(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, mp.Electricity.Len())
	assert.Equal(t, 0, mp.Gas.Len())
}

func TestLoginSetsSessionAndBearerToken(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		switch req.OperationName {
		case "Login":
			assert.Empty(t, r.Header.Get("Authorization"))
			require.Equal(t, "jane@example.com", req.Variables["email"])
			require.Equal(t, "hunter2", req.Variables["password"])
			return loginResponse("auth-token", "refresh-token")
		case "Me":
			assert.Equal(t, "Bearer auth-token", r.Header.Get("Authorization"))
			return map[string]any{"data": map[string]any{"me": map[string]any{
				"id":                 "user-1",
				"connectionsStatus":  "READY",
				"treesCount":         3,
				"hasCO2Compensation": true,
			}}}
		default:
			t.Fatalf("unexpected operation %q", req.OperationName)
			return nil
		}
	})
	defer client.Close()

	ctx := context.Background()
	require.False(t, client.IsAuthenticated())

	session, err := client.Login(ctx, "jane@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "auth-token", session.AuthToken)
	assert.True(t, client.IsAuthenticated())

	user, err := client.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, "READY", user.ConnectionsStatus)
	assert.Equal(t, 3, user.TreesCount)
	assert.True(t, user.HasCO2Compensation)
}

func TestLoginRejectedCredentials(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		return map[string]any{"errors": []map[string]any{{"message": "user-error:password-invalid"}}}
	})
	defer client.Close()

	_, err := client.Login(context.Background(), "jane@example.com", "wrong")
	var authErr *query.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, client.IsAuthenticated())
}

func TestRenewTokenReplacesSession(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		require.Equal(t, "RenewToken", req.OperationName)
		require.Equal(t, "old-auth", req.Variables["authToken"])
		require.Equal(t, "old-refresh", req.Variables["refreshToken"])
		return map[string]any{"data": map[string]any{"renewToken": map[string]any{
			"authToken":    "new-auth",
			"refreshToken": "new-refresh",
		}}}
	}, WithTokens("old-auth", "old-refresh"))
	defer client.Close()

	session, err := client.RenewToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-auth", session.AuthToken)
	assert.Equal(t, "new-refresh", session.RefreshToken)
}

func TestAuthenticatedOperationsRequireSession(t *testing.T) {
	client := New(query.Netherlands)
	defer client.Close()
	ctx := context.Background()

	_, err := client.User(ctx)
	assert.ErrorIs(t, err, ErrAuthRequired)
	_, err = client.MonthSummary(ctx)
	assert.ErrorIs(t, err, ErrAuthRequired)
	_, err = client.Invoices(ctx)
	assert.ErrorIs(t, err, ErrAuthRequired)
	_, err = client.UserPrices(ctx, time.Now())
	assert.ErrorIs(t, err, ErrAuthRequired)
	_, err = client.RenewToken(ctx)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestNotAuthorisedRaisesAuthError(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		return map[string]any{"errors": []map[string]any{{"message": "user-error:auth-not-authorised"}}}
	}, WithTokens("stale-auth", "stale-refresh"))
	defer client.Close()

	_, err := client.User(context.Background())
	var authErr *query.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestBelgiumResolvesSiteReferenceOnce(t *testing.T) {
	meCalls := 0
	client := newTestClient(t, query.Belgium, func(t *testing.T, r *http.Request, req wireRequest) any {
		assert.Equal(t, "BE", r.Header.Get("X-Country"))
		switch req.OperationName {
		case "Me":
			meCalls++
			return map[string]any{"data": map[string]any{"me": map[string]any{
				"id":            "user-1",
				"deliverySites": []map[string]any{{"reference": "SITE-1"}},
			}}}
		case "MonthSummary":
			require.Equal(t, "SITE-1", req.Variables["siteReference"])
			return map[string]any{"data": map[string]any{"monthSummary": map[string]any{
				"actualCostsUntilLastMeterReadingDate":   80.5,
				"expectedCostsUntilLastMeterReadingDate": 70.25,
				"expectedCosts":                          140.0,
				"lastMeterReadingDate":                   "2025-06-14",
			}}}
		default:
			t.Fatalf("unexpected operation %q", req.OperationName)
			return nil
		}
	}, WithTokens("auth", "refresh"))
	defer client.Close()

	ctx := context.Background()
	summary, err := client.MonthSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 140.0, summary.ExpectedCosts)
	assert.Equal(t, 10.25, summary.DifferenceUntilLastMeterReadingDate())

	_, err = client.MonthSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, meCalls, "the site reference is fetched at most once per session")
}

func TestInvoices(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		require.Equal(t, "Invoices", req.OperationName)
		return map[string]any{"data": map[string]any{"invoices": map[string]any{
			"previousPeriodInvoice": map[string]any{
				"StartDate":         "2025-05-01T00:00:00Z",
				"PeriodDescription": "May 2025",
				"TotalAmount":       98.75,
			},
			"currentPeriodInvoice": map[string]any{
				"StartDate":         "2025-06-01T00:00:00Z",
				"PeriodDescription": "June 2025",
				"TotalAmount":       101.2,
			},
			"upcomingPeriodInvoice": nil,
		}}}
	}, WithTokens("auth", "refresh"))
	defer client.Close()

	invoices, err := client.Invoices(context.Background())
	require.NoError(t, err)
	require.NotNil(t, invoices.PreviousPeriodInvoice)
	assert.Equal(t, "May 2025", invoices.PreviousPeriodInvoice.PeriodDescription)
	assert.Equal(t, 98.75, invoices.PreviousPeriodInvoice.TotalAmount)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), invoices.CurrentPeriodInvoice.StartDate)
	assert.Nil(t, invoices.UpcomingPeriodInvoice)
}

func TestUserPrices(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		require.Equal(t, "CustomerMarketPrices", req.OperationName)
		require.Equal(t, "2025-06-15", req.Variables["date"])
		return map[string]any{"data": map[string]any{"customerMarketPrices": map[string]any{
			"electricityPrices": priceEntries(t, "2025-06-15", 24),
			"gasPrices":         priceEntries(t, "2025-06-15", 1),
		}}}
	}, WithTokens("auth", "refresh"))
	defer client.Close()

	day := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	mp, err := client.UserPrices(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 24, mp.Electricity.Len())
	assert.Equal(t, 1, mp.Gas.Len())
}

func TestUnexpectedResponseShape(t *testing.T) {
	client := newTestClient(t, query.Netherlands, func(t *testing.T, r *http.Request, req wireRequest) any {
		return map[string]any{"data": map[string]any{"somethingElse": map[string]any{}}}
	}, WithTokens("auth", "refresh"))
	defer client.Close()

	_, err := client.MonthSummary(context.Background())
	var reqErr *query.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "unexpected response", reqErr.Message)
}

func TestTransportErrorWrapsAsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := New(query.Netherlands, WithEndpoint(srv.URL))
	defer client.Close()

	day := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	_, err := client.Prices(context.Background(), day, day.AddDate(0, 0, 1))
	var reqErr *query.RequestError
	require.ErrorAs(t, err, &reqErr)
}
