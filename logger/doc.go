// Package logger provides structured logging for the Oway SDK using zerolog.
//
// Every field map passed to a logging call is recursively redacted before it
// is written: any key containing "apikey", "token", "authorization",
// "password", or "secret" (case-insensitive) has its value replaced with a
// redaction marker, through nested objects and arrays. Credentials therefore
// never reach the log sink in cleartext.
//
// # Usage
//
//	log := logger.New(&logger.Config{Level: "debug"}, "oway")
//	log.Debug("token refreshed", logger.Fields("expires_in", 3600))
package logger
