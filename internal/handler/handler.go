// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It binds requests, validates them using the validation package
// and the request models, and calls the service layer. Successful
// results are wrapped in the response envelope here; failures are
// returned to the global error handler.
package handler
