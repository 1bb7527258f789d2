package purchases

import (
	"errors"

	"purchase-manager/core/backend"
)

// ErrorDomain identifies which external system produced a failure.
type ErrorDomain string

const (
	// ErrorDomainBilling marks failures reported by the platform billing layer.
	ErrorDomainBilling ErrorDomain = "billing"
	// ErrorDomainBackend marks failures reported by the entitlement backend.
	ErrorDomainBackend ErrorDomain = "backend"
)

// backendErrorCode extracts the HTTP status carried by a backend error.
// Transport-level failures without a response report 0.
func backendErrorCode(err error) int {
	var be *backend.Error
	if errors.As(err, &be) {
		return be.StatusCode
	}
	return 0
}
