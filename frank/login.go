package frank

import (
	"context"
	"encoding/json"

	"github.com/angas/frankenergie-go/auth"
	"github.com/angas/frankenergie-go/query"
)

type tokenPayload struct {
	AuthToken    string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates with email and password and replaces the client's
// session with the returned token pair. For Belgium the delivery-site
// reference is resolved right after.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	env, err := c.do(ctx, query.OpLogin, map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	session, err := sessionFromPayload(env, "login")
	if err != nil {
		return nil, err
	}
	c.session = session

	if err := c.loadSiteReference(ctx); err != nil {
		return nil, err
	}
	return c.session, nil
}

// RenewToken exchanges the current token pair for a fresh one. The
// session is replaced wholesale, discarding the memoized site
// reference, which is then resolved again for Belgium.
func (c *Client) RenewToken(ctx context.Context) (*auth.Session, error) {
	if c.session == nil {
		return nil, ErrAuthRequired
	}

	env, err := c.do(ctx, query.OpRenewToken, map[string]any{
		"authToken":    c.session.AuthToken,
		"refreshToken": c.session.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	session, err := sessionFromPayload(env, "renewToken")
	if err != nil {
		return nil, err
	}
	c.session = session

	if err := c.loadSiteReference(ctx); err != nil {
		return nil, err
	}
	return c.session, nil
}

func sessionFromPayload(env query.Envelope, key string) (*auth.Session, error) {
	payload, err := env.Payload(key)
	if err != nil {
		return nil, &query.AuthError{Message: "unexpected response"}
	}
	var tokens tokenPayload
	if err := json.Unmarshal(payload, &tokens); err != nil {
		return nil, &query.AuthError{Message: "unexpected response"}
	}
	return auth.NewSession(tokens.AuthToken, tokens.RefreshToken), nil
}
