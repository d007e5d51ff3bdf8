// Package transport is the authenticated request executor behind every Oway
// API call.
//
// Each logical request resolves a bearer token (possibly triggering a
// single-flight refresh), resolves the effective tenant key, composes
// headers, and sends the HTTP exchange under a per-attempt timeout. Failures
// are classified into transient and fatal; transient ones are retried with
// exponential backoff, and every attempt re-resolves the token and tenant
// key so a mid-loop refresh is transparent.
//
//	client, _ := transport.New(transport.Config{BaseURL: url}, tokens)
//	quote, err := transport.Post[api.Quote](ctx, client, "/v1/quotes", req)
package transport
