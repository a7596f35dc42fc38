// Package frank is a client for the Frank Energie GraphQL backend. It
// authenticates, fetches market and customer price series, account
// summaries and invoices, and returns them as typed values.
package frank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/angas/frankenergie-go/auth"
	"github.com/angas/frankenergie-go/query"
)

// DataURL is the production GraphQL endpoint.
const DataURL = "https://frank-graphql-prod.graphcdn.app/"

const dateLayout = "2006-01-02"

// ErrAuthRequired is returned when an authenticated operation is
// invoked without a session. Call Login first.
var ErrAuthRequired = errors.New("authentication required")

// Client talks to the backend for one country. It is not safe for
// concurrent use: login and renewal replace the session wholesale.
type Client struct {
	httpClient *http.Client
	ownClient  bool
	endpoint   string
	country    query.Country
	session    *auth.Session
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient supplies an external transport. The client will not
// close a transport it did not create.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithEndpoint overrides the GraphQL endpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithTokens resumes an earlier session from a stored token pair.
func WithTokens(authToken, refreshToken string) Option {
	return func(c *Client) {
		c.session = auth.NewSession(authToken, refreshToken)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With("module", "frank")
	}
}

// New creates a client for the given country. An empty country defaults
// to the Netherlands.
func New(country query.Country, opts ...Option) *Client {
	if country == "" {
		country = query.Netherlands
	}
	c := &Client{
		endpoint: DataURL,
		country:  country,
		logger:   slog.Default().With("module", "frank"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAuthenticated reports whether a session is held. It does not check
// that the token is still valid.
func (c *Client) IsAuthenticated() bool {
	return c.session != nil
}

// AuthenticationValid reports whether a session is held and its token
// has not expired.
func (c *Client) AuthenticationValid(now time.Time) bool {
	if c.session == nil {
		return false
	}
	return c.session.Valid(now)
}

// Close releases the transport if the client created it itself.
func (c *Client) Close() {
	if c.httpClient != nil && c.ownClient {
		c.httpClient.CloseIdleConnections()
	}
}

func (c *Client) transport() *http.Client {
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
		c.ownClient = true
	}
	return c.httpClient
}

// do dispatches one operation: looks up the country variant, binds the
// variables, posts the request and classifies the response envelope.
func (c *Client) do(ctx context.Context, op query.Operation, values map[string]any) (query.Envelope, error) {
	desc, err := query.Lookup(op, c.country)
	if err != nil {
		return query.Envelope{}, err
	}

	request, err := desc.Bind(values)
	if err != nil {
		return query.Envelope{}, err
	}

	body, err := json.Marshal(request)
	if err != nil {
		return query.Envelope{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return query.Envelope{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Country", string(c.country))
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.AuthToken)
	}

	resp, err := c.transport().Do(req)
	if err != nil {
		return query.Envelope{}, &query.RequestError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return query.Envelope{}, &query.RequestError{Message: fmt.Sprintf("got status %s", resp.Status)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return query.Envelope{}, &query.RequestError{Message: fmt.Sprintf("request failed: %v", err)}
	}

	var env query.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return query.Envelope{}, &query.RequestError{Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	c.logger.Debug("response received", slog.String("operation", string(op)), slog.String("body", string(raw)))

	if err := env.Classify(op); err != nil {
		return env, err
	}
	return env, nil
}

// loadSiteReference resolves the delivery-site reference needed by the
// Belgian query variants. It is fetched at most once per session.
func (c *Client) loadSiteReference(ctx context.Context) error {
	if c.session == nil {
		return ErrAuthRequired
	}
	if c.country != query.Belgium {
		return nil
	}
	if _, ok := c.session.SiteReference(); ok {
		return nil
	}

	user, err := c.User(ctx)
	if err != nil {
		return err
	}
	if user.SiteReference != "" {
		c.session.SetSiteReference(user.SiteReference)
	}
	return nil
}

// siteValues returns the runtime variables derived from the session,
// for operations whose Belgian variant needs the site reference.
func (c *Client) siteValues() map[string]any {
	values := map[string]any{}
	if c.session != nil {
		if ref, ok := c.session.SiteReference(); ok {
			values["siteReference"] = ref
		}
	}
	return values
}
