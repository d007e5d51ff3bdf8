// Package auth manages the machine-to-machine bearer token used by every
// Oway API request.
//
// A TokenSource caches the token and refreshes it proactively once it is
// within the safety margin of expiry. Refreshes are single-flight: however
// many request flows hit an expired cache concurrently, exactly one call
// reaches the token endpoint and all callers share its result, including
// its failure.
package auth
