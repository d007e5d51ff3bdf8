// Package resilience provides the retry engine and client-side throttle used
// by the Oway request pipeline.
//
// Retry is modeled as an explicit state machine (attempting, retrying,
// succeeded, failed) with an attempt counter, rather than as a loop of
// recovered errors. Backoff doubles per attempt: with a 1s base the delays
// are 1s, 2s, 4s, and so on, capped by MaxBackoff.
package resilience
