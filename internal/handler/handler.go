// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It extracts the request payload, calls the appropriate service and
// writes the response. Every failure is answered here: nothing a service
// returns reaches the transport as an unhandled error.
package handler
