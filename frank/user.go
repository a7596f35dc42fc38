package frank

import (
	"context"
	"encoding/json"

	"github.com/angas/frankenergie-go/query"
)

// User is the account profile, including connection status and the
// delivery sites the Belgian variants key their queries on.
type User struct {
	ID                    string
	ConnectionsStatus     string
	FirstMeterReadingDate string
	LastMeterReadingDate  string
	AdvancedPaymentAmount float64
	TreesCount            int
	HasCO2Compensation    bool
	// SiteReference is the first delivery site, when the backend
	// returns any (Belgium only).
	SiteReference string
}

type userPayload struct {
	ID                    string  `json:"id"`
	ConnectionsStatus     string  `json:"connectionsStatus"`
	FirstMeterReadingDate string  `json:"firstMeterReadingDate"`
	LastMeterReadingDate  string  `json:"lastMeterReadingDate"`
	AdvancedPaymentAmount float64 `json:"advancedPaymentAmount"`
	TreesCount            int     `json:"treesCount"`
	HasCO2Compensation    bool    `json:"hasCO2Compensation"`
	DeliverySites         []struct {
		Reference string `json:"reference"`
	} `json:"deliverySites"`
}

// User fetches the account profile. Requires a session.
func (c *Client) User(ctx context.Context) (User, error) {
	if c.session == nil {
		return User{}, ErrAuthRequired
	}

	env, err := c.do(ctx, query.OpMe, c.siteValues())
	if err != nil {
		return User{}, err
	}

	payload, err := env.Payload("me")
	if err != nil {
		return User{}, err
	}

	var raw userPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return User{}, &query.RequestError{Message: "unexpected response"}
	}

	user := User{
		ID:                    raw.ID,
		ConnectionsStatus:     raw.ConnectionsStatus,
		FirstMeterReadingDate: raw.FirstMeterReadingDate,
		LastMeterReadingDate:  raw.LastMeterReadingDate,
		AdvancedPaymentAmount: raw.AdvancedPaymentAmount,
		TreesCount:            raw.TreesCount,
		HasCO2Compensation:    raw.HasCO2Compensation,
	}
	if len(raw.DeliverySites) > 0 {
		user.SiteReference = raw.DeliverySites[0].Reference
	}
	return user, nil
}
