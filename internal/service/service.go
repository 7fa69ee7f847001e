// Package service contains the business logic.
//
// It sits between the handler layer and the libraries in internal/lib.
// It receives a validated model.Operation from the handler, runs the
// matching numeric kernel or asks the remote answer service, and returns
// the payload for the response envelope.
package service
