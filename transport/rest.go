package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*T, error) {
	return doTyped[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body and decodes the response
// into type T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*T, error) {
	return doTyped[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response into
// type T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*T, error) {
	return doTyped[T](ctx, c, http.MethodPut, path, body, opts...)
}

// Delete performs a DELETE request and decodes the JSON response into type T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*T, error) {
	return doTyped[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// doTyped executes a request and decodes the JSON response. A no-content
// response yields a zero value, not a decode error.
func doTyped[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (*T, error) {
	req := Request{
		Method: method,
		Path:   path,
		Body:   body,
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("transport: decode response: %w", err)
		}
	}
	return &data, nil
}
