package provider

import "errors"

// Failure kinds at the provider boundary. Callers branch on these with
// errors.Is instead of inspecting transport errors; signature failures in
// particular must stay distinguishable from operational ones because they map
// to 403, not 500.
var (
	ErrSignatureInvalid    = errors.New("webhook signature invalid")
	ErrMalformed           = errors.New("provider payload malformed")
	ErrNotFound            = errors.New("checkout session not found")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
)
