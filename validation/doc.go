// Package validation wraps go-playground/validator for the SDK's boundary
// checks: request payloads are validated before any network I/O, and the
// client configuration is validated at construction.
//
// Validation failures surface as non-retryable client errors with a
// field-by-field message:
//
//	if err := validation.Validate(req); err != nil {
//	    return nil, err // "origin.postal_code: is required"
//	}
package validation
