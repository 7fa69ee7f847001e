// Package model holds the request-scoped values exchanged between the
// handler and service layers: the validated Operation and the response
// Envelope.
package model
