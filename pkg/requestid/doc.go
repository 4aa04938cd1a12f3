// Package requestid tags every request with an id.
//
// Middleware accepts an incoming X-Request-ID made of letters, digits, '-'
// and '_' (at most 128 bytes) and generates a UUID otherwise. The id is
// echoed in the response header and stored in the request context, where
// Extractor exposes it to pkg/logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.Extractor))
package requestid
