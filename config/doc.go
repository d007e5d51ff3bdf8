// Package config loads client configuration from the environment.
//
// All settings live under the OWAY_ prefix (OWAY_CLIENT_ID,
// OWAY_CLIENT_SECRET, OWAY_API_KEY, ...). A .env file in the working
// directory is loaded first when present; real environment variables always
// win over .env entries.
package config
