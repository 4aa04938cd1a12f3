// Package clientip resolves the address of the client that sent a request.
//
// Forwarding headers are only honoured when they are listed as trusted,
// because any client can set them. Without trusted headers the TCP peer
// address is used:
//
//	resolver := clientip.New("CF-Connecting-IP", "X-Forwarded-For")
//	r.Use(resolver.Middleware)
//
//	// in a handler
//	ip := clientip.FromContext(r.Context())
//
// For X-Forwarded-For only the right-most address is taken, the one the
// nearest proxy appended. Entries left of it come from the client.
package clientip
