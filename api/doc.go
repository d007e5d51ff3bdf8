// Package api defines the typed request and response payloads for the Oway
// freight API.
//
// The wire schema is an external contract; these structures mirror it with
// explicit JSON tags rather than passing dynamic maps around. Request types
// carry validate tags and are checked at the client boundary before any
// network I/O.
package api
