// Package validation contains the logic for validating
// request data.
//
// It binds request bodies, runs each payload's own Validate method and
// converts failures into 400 errors the client can understand. It also
// holds the strict JSON value parsers used by request payloads.
package validation
