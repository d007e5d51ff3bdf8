// Package oway is the Go client for the Oway freight API.
//
// A Client is constructed once from M2M credentials and shared across
// goroutines. It manages the bearer token lifecycle (cached, refreshed
// ahead of expiry, one refresh in flight at a time) and retries transient
// failures with exponential backoff.
//
//	client, err := oway.New(oway.Config{
//		ClientID:     os.Getenv("OWAY_CLIENT_ID"),
//		ClientSecret: os.Getenv("OWAY_CLIENT_SECRET"),
//		APIKey:       os.Getenv("OWAY_API_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	quote, err := client.RequestQuote(ctx, &api.QuoteRequest{...})
//
// Brokers acting for multiple companies use the ForCompany variants, which
// take the company API key explicitly instead of relying on client state:
//
//	quote, err := client.RequestQuoteForCompany(ctx, req, companyKey)
package oway
