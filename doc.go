// Package netpad provides a Go client SDK for the NetPad API, a remote
// code-analysis service that executes named commands, tools, and
// workflows over HTTP.
//
// The client retries transient failures (network errors, 5xx, 429) with
// exponential backoff and normalizes every failure into a single *Error
// shape, so callers can match on status and message uniformly.
//
// Basic usage:
//
//	client, err := netpad.New(netpad.WithAPIKey("your-api-key"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.AnalyzeCode(ctx, source, "javascript", "summary", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(string(result))
//
// Configuration falls back to the NETPAD_API_URL, NETPAD_API_KEY,
// NETPAD_TIMEOUT and NETPAD_RETRIES environment variables for any field
// not set explicitly.
package netpad
