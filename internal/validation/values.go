package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MaxSafeInteger is the largest integer a JSON number carries exactly
// (2^53 - 1). Integers outside ±MaxSafeInteger are rejected.
const MaxSafeInteger = 1<<53 - 1

// IsJSONObject reports whether raw holds a JSON object.
func IsJSONObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// ParseInteger decodes raw as an integral JSON number. Both 5 and 5.0
// are integers; 5.5, "5", true and null are not.
func ParseInteger(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return 0, false
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, false
	}

	if i, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
		return i, i >= -MaxSafeInteger && i <= MaxSafeInteger
	}

	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < -MaxSafeInteger || f > MaxSafeInteger {
		return 0, false
	}
	return int64(f), true
}

// ParseIntegerArray decodes raw as a JSON array whose every element is an
// integer. The returned slice is never nil on success.
func ParseIntegerArray(raw json.RawMessage) ([]int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	values := make([]int64, 0, len(items))
	for _, item := range items {
		v, ok := ParseInteger(item)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// ParseNonBlankString decodes raw as a JSON string containing at least one
// non-whitespace character. The string is returned untrimmed.
func ParseNonBlankString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, strings.TrimSpace(s) != ""
}
