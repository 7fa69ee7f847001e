// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains the pure numeric kernels (numeric) and the client for the
// external natural-language answer service (gemini).
package lib
