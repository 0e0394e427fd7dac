package provider

import (
	"fmt"

	"storefront/pkg/utils"
)

// Error is a failed provider exchange. Body holds the upstream response, or
// the transport error text when no response arrived.
type Error struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("provider request failed: %v", e.Err)
	}
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{utils.ErrProvider}
	}
	return []error{utils.ErrProvider, e.Err}
}

// AuditPayload is what gets persisted for the failed exchange.
func (e *Error) AuditPayload() []byte {
	if len(e.Body) > 0 {
		return AuditJSON(e.Body)
	}
	if e.Err != nil {
		return AuditJSON([]byte(e.Err.Error()))
	}
	return AuditJSON([]byte(e.Error()))
}
