// HTTP-layer error codes returned in ErrorResponse envelopes.
//
// Codes are lowercase snake_case and stable: clients may branch on them
// programmatically. The webhook endpoint never returns these (it always
// acknowledges with 200), so only the generic surface needs a taxonomy.

package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"
)
