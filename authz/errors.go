package authz

import "errors"

var (
	// UnauthenticatedErr means no valid, non-revoked credential accompanied
	// the request. Maps to HTTP 401 at the boundary.
	UnauthenticatedErr = errors.New("unauthorized")

	// ForbiddenErr means the credential was valid but the principal lacks
	// authorization for the operation. Maps to HTTP 403 at the boundary.
	ForbiddenErr = errors.New("unauthorized")
)
