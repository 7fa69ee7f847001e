package model

import (
	"encoding/json"

	"github.com/deppfellow/bfhl/internal/validation"
)

// Client-facing validation messages.
const (
	MessageExactlyOneKey    = "Exactly one functional key must be provided"
	MessageInvalidFibonacci = "Invalid fibonacci input"
	MessagePrimeInput       = "Prime input must be integer array"
	MessageHCFInput         = "HCF input must be integer array"
	MessageHCFEmpty         = "HCF input must be non-empty integer array"
	MessageLCMInput         = "LCM input must be integer array"
	MessageLCMEmpty         = "LCM input must be non-empty integer array"
	MessageAIInput          = "AI input must be question string"
	MessageUnsupportedKey   = "Unsupported key"
)

// Limits bounds the inputs a request may carry.
type Limits struct {
	MaxFibonacciTerms int
	MaxArrayLength    int
}

// BFHLRequest is the body of POST /bfhl.
//
// Decoding only records the raw top-level members; Validate performs the
// shape check and produces the typed Operation.
type BFHLRequest struct {
	Limits Limits

	isObject bool
	fields   map[string]json.RawMessage
	op       Operation
}

// NewBFHLRequest returns an empty request bound to limits.
func NewBFHLRequest(limits Limits) *BFHLRequest {
	return &BFHLRequest{Limits: limits}
}

// UnmarshalJSON records the members of a JSON object. Non-object bodies
// (arrays, scalars, null) are accepted here and rejected by Validate.
func (r *BFHLRequest) UnmarshalJSON(data []byte) error {
	r.isObject = false
	r.fields = nil

	if !validation.IsJSONObject(data) {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.isObject = true
	r.fields = fields
	return nil
}

// Operation returns the operation produced by a successful Validate.
func (r *BFHLRequest) Operation() Operation {
	return r.op
}

// Validate checks the request shape and decodes the single key's value.
func (r *BFHLRequest) Validate() error {
	if !r.isObject {
		return invalid("", validation.MessageInvalidBody, "")
	}
	if len(r.fields) != 1 {
		return invalid("", MessageExactlyOneKey, "")
	}

	for key, raw := range r.fields {
		op, err := r.parse(Key(key), raw)
		if err != nil {
			return err
		}
		r.op = op
	}
	return nil
}

func (r *BFHLRequest) parse(key Key, raw json.RawMessage) (Operation, error) {
	switch key {
	case KeyFibonacci:
		n, ok := validation.ParseInteger(raw)
		if !ok || n < 0 || (r.Limits.MaxFibonacciTerms > 0 && n > int64(r.Limits.MaxFibonacciTerms)) {
			return nil, invalid(key, MessageInvalidFibonacci, "")
		}
		op := Fibonacci{N: int(n)}
		return op, check(op, key, MessageInvalidFibonacci)

	case KeyPrime:
		values, ok := r.parseArray(raw)
		if !ok {
			return nil, invalid(key, MessagePrimeInput, "")
		}
		op := Prime{Values: values}
		return op, check(op, key, MessagePrimeInput)

	case KeyHCF:
		values, ok := r.parseArray(raw)
		if !ok {
			return nil, invalid(key, MessageHCFInput, "")
		}
		op := HCF{Values: values}
		return op, check(op, key, MessageHCFEmpty)

	case KeyLCM:
		values, ok := r.parseArray(raw)
		if !ok {
			return nil, invalid(key, MessageLCMInput, "")
		}
		op := LCM{Values: values}
		return op, check(op, key, MessageLCMEmpty)

	case KeyAI:
		question, ok := validation.ParseNonBlankString(raw)
		if !ok {
			return nil, invalid(key, MessageAIInput, "")
		}
		op := AI{Question: question}
		return op, check(op, key, MessageAIInput)

	default:
		return nil, invalid(key, MessageUnsupportedKey, "UNSUPPORTED_KEY")
	}
}

func (r *BFHLRequest) parseArray(raw json.RawMessage) ([]int64, bool) {
	values, ok := validation.ParseIntegerArray(raw)
	if !ok {
		return nil, false
	}
	if r.Limits.MaxArrayLength > 0 && len(values) > r.Limits.MaxArrayLength {
		return nil, false
	}
	return values, true
}

// check runs the struct tags of op and reports message on failure.
func check(op Operation, key Key, message string) error {
	if err := validation.Struct(op); err != nil {
		return invalid(key, message, "")
	}
	return nil
}

func invalid(key Key, message, code string) error {
	return validation.CustomValidationErrors{{
		Field:   string(key),
		Message: message,
		Code:    code,
	}}
}
