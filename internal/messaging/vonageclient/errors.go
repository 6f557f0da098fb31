package vonageclient

import (
	"fmt"
)

// TransportError is returned for every failed send: local validation, network
// failures and non-2xx API responses. API problem details (RFC 7807) are
// decoded into Type, Title and Detail when present.
type TransportError struct {
	StatusCode int    `json:"-"`
	Type       string `json:"type,omitempty"`
	Title      string `json:"title,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Instance   string `json:"instance,omitempty"`
	Err        error  `json:"-"`
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("vonageclient: %v", e.Err)
	case e.Title != "" && e.StatusCode > 0:
		return fmt.Sprintf("vonageclient: %s (status=%d)", e.Title, e.StatusCode)
	case e.Detail != "" && e.StatusCode > 0:
		return fmt.Sprintf("vonageclient: %s (status=%d)", e.Detail, e.StatusCode)
	case e.Detail != "":
		return "vonageclient: " + e.Detail
	default:
		return fmt.Sprintf("vonageclient: http status %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
