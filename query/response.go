package query

import (
	"encoding/json"
	"strings"
)

const (
	authNotAuthorisedMessage = "user-error:auth-not-authorised"
	noPricesPrefix           = "No marketprices found for segment"
)

// Envelope is the top-level GraphQL response shape.
type Envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors,omitempty"`
}

// Error is one entry of the response error list.
type Error struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// Classify inspects the error list and maps it onto the client error
// taxonomy. The not-authorised sentinel always becomes an *AuthError.
// For the auth mutations any backend error means rejected credentials.
// For price queries the "no prices for segment" sentinel becomes
// ErrNoPricesForSegment so callers can normalize it to an empty result.
// Everything else becomes a *RequestError carrying the backend message.
func (e Envelope) Classify(op Operation) error {
	if len(e.Errors) == 0 {
		return nil
	}

	for _, entry := range e.Errors {
		if entry.Message == authNotAuthorisedMessage {
			return &AuthError{Message: entry.Message}
		}
	}

	first := e.Errors[0]

	switch op {
	case OpLogin, OpRenewToken:
		return &AuthError{Message: first.Message}
	case OpMarketPrices, OpCustomerMarketPrices:
		if strings.HasPrefix(first.Message, noPricesPrefix) {
			return ErrNoPricesForSegment
		}
	}

	return &RequestError{Message: first.Message}
}

// Payload extracts one named key from the data object. An absent or
// null key is an unexpected response.
func (e Envelope) Payload(key string) (json.RawMessage, error) {
	data, err := e.DataKeys()
	if err != nil {
		return nil, err
	}
	payload, ok := data[key]
	if !ok || isJSONNull(payload) {
		return nil, &RequestError{Message: "unexpected response"}
	}
	return payload, nil
}

// DataKeys decodes the data object into its top-level keys. Price
// queries for the Netherlands carry two sibling payload keys, so the
// caller picks them out itself.
func (e Envelope) DataKeys() (map[string]json.RawMessage, error) {
	if len(e.Data) == 0 || isJSONNull(e.Data) {
		return nil, &RequestError{Message: "unexpected response"}
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, &RequestError{Message: "unexpected response"}
	}
	return data, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
