// Package version exposes the SDK version and the User-Agent string sent on
// every request.
package version
