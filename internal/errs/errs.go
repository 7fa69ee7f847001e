// Package errs defines custom error types and utilities.
//
// Its purpose is to give every failure a single shape (HTTPError) so the
// global error handler can turn it into the uniform response envelope
// with a meaningful status code and message.
package errs
