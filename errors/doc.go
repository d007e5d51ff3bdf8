// Package errors defines the structured error type surfaced by the Oway SDK.
//
// Every failure, whether configuration, authentication, transport, or API,
// is reported as an *Error carrying a kind, a human-readable message, the API
// error code when one was returned, the HTTP status, and the request id for
// support correlation. Callers classify errors with the Is* predicates:
//
//	quote, err := client.RequestQuote(ctx, req)
//	if owayerrors.IsRetryable(err) {
//	    // transient failure, already retried per policy
//	}
package errors
