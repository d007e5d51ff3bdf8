package transport

// Request describes one logical API request. Created fresh per call.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE).
	Method string
	// Path is appended to the client's BaseURL.
	Path string
	// Query are URL query parameters.
	Query map[string]string
	// Headers are caller-supplied header overrides, layered last.
	Headers map[string]string
	// Body is JSON-encoded when non-nil.
	Body any
	// TenantKey overrides the client-level default company API key for
	// this call only.
	TenantKey string
	// RequestID correlates the request with server-side logs. Generated
	// when empty.
	RequestID string
}

// Response is the result of a successful request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, single-valued.
	Headers map[string]string
	// Body is the raw response body. Nil for no-content responses.
	Body []byte
	// RequestID is the id the exchange ran under: the server's echoed
	// x-request-id when present, else the client-generated one.
	RequestID string
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithQuery sets the request's query parameters.
func WithQuery(params map[string]string) RequestOption {
	return func(r *Request) {
		r.Query = params
	}
}

// WithQueryParam adds a single query parameter.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// WithHeader adds a header override.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithTenantKey overrides the company API key for this call.
func WithTenantKey(key string) RequestOption {
	return func(r *Request) {
		r.TenantKey = key
	}
}

// WithRequestID supplies the request id instead of generating one.
func WithRequestID(id string) RequestOption {
	return func(r *Request) {
		r.RequestID = id
	}
}
