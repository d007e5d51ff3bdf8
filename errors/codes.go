package errors

// Kind classifies an SDK error.
type Kind string

const (
	// KindConfiguration indicates invalid or missing client configuration.
	// Raised synchronously at construction, before any network call.
	KindConfiguration Kind = "CONFIGURATION"
	// KindAuthentication indicates a token endpoint failure or a malformed
	// token response.
	KindAuthentication Kind = "AUTHENTICATION"
	// KindTransient indicates a failure that may succeed on retry: 5xx
	// (except 501), 429, or a transport-level failure with no status.
	KindTransient Kind = "TRANSIENT"
	// KindClient indicates a non-retryable request error: 4xx (except 429)
	// and 501.
	KindClient Kind = "CLIENT"
)

// RetryableStatus reports whether an HTTP status code represents a transient
// failure worth retrying. Transport-level failures carry no status and are
// classified by the executor itself, not by this table.
func RetryableStatus(status int) bool {
	switch status {
	case 429:
		return true
	case 501:
		return false
	default:
		return status >= 500
	}
}

// kindForStatus maps an HTTP status to an error kind.
func kindForStatus(status int) Kind {
	if RetryableStatus(status) {
		return KindTransient
	}
	return KindClient
}
