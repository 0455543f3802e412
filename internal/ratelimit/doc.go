// Package ratelimit provides the process-wide outbound request gate.
//
// NCBI enforces a shared request budget across all E-utilities and BLAST
// endpoints: 3 requests/second anonymously, 10/second with an API key.
// A single Limiter instance is constructed at startup from credential
// presence and injected into the remote client, so every tool call down to
// each individual BLAST poll passes through the same gate.
//
//	limiter := ratelimit.ForAPIKey(cfg.APIKey != "")
//	if err := limiter.Acquire(ctx); err != nil {
//	    return err
//	}
//	// issue request
//
// The limiter serializes timing only, not request content: concurrent tool
// invocations overlap freely except for the spacing of their outbound calls.
package ratelimit
