package stratum

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Validate classifies a single candidate frame as well-formed or not.
// A nil return means the frame may be forwarded; a non-nil return names
// the first failed check. Validation is all-or-nothing: a frame that
// fails any rule is rejected outright.
//
// The checks, in order:
//
//  1. The frame parses as a JSON object.
//  2. An id field is present (0 and null count as present), along with at
//     least one of method, result or error.
//  3. A frame with a method is a request: the method must be one of the
//     recognized mining methods and the params must satisfy that method's
//     rules.
//  4. A frame without a method is a response: result must be present
//     (an explicit null is fine) and error, unless absent or null, must
//     be an array.
func Validate(raw []byte) error {
	f, err := Parse(raw)
	if err != nil {
		return err
	}
	return f.Validate()
}

// Validate applies the protocol rules to an already-parsed frame.
// See the package-level Validate for the rule set.
func (f *Frame) Validate() error {
	if f.ID == nil {
		return fmt.Errorf("frame has no id field")
	}
	if f.Method == nil && f.Result == nil && f.Error == nil {
		return fmt.Errorf("frame has none of method, result or error")
	}
	if f.IsRequest() {
		return f.validateRequest()
	}
	return f.validateResponse()
}

// validateRequest applies the per-method parameter rules.
func (f *Frame) validateRequest() error {
	method := f.MethodName()
	params, err := f.paramsArray()
	if err != nil {
		return err
	}

	switch method {
	case MethodSubscribe:
		if len(params) < 2 {
			return fmt.Errorf("%s requires at least 2 params, got %d", method, len(params))
		}

	case MethodAuthorize:
		if len(params) < 2 {
			return fmt.Errorf("%s requires at least 2 params, got %d", method, len(params))
		}
		if err := validateWorkerName(params[0]); err != nil {
			return fmt.Errorf("%s param 0: %w", method, err)
		}
		if !isJSONString(params[1]) {
			return fmt.Errorf("%s param 1 must be a string", method)
		}

	case MethodSubmit:
		if len(params) < 5 {
			return fmt.Errorf("%s requires at least 5 params, got %d", method, len(params))
		}
		if err := validateWorkerName(params[0]); err != nil {
			return fmt.Errorf("%s param 0: %w", method, err)
		}
		if !isJSONString(params[1]) {
			return fmt.Errorf("%s param 1 must be a string", method)
		}
		for i := 2; i <= 4; i++ {
			if err := validateHexParam(params[i]); err != nil {
				return fmt.Errorf("%s param %d: %w", method, i, err)
			}
		}

	case MethodConfigure:
		if len(params) < 2 {
			return fmt.Errorf("%s requires at least 2 params, got %d", method, len(params))
		}
		if err := validateDifficulty(params[1]); err != nil {
			return fmt.Errorf("%s param 1: %w", method, err)
		}

	case MethodExtranonceSubscribe:
		// No parameter constraints beyond params being an array.

	default:
		return fmt.Errorf("unknown method %q", method)
	}

	return nil
}

// validateResponse checks the result/error shape of a response frame.
// An explicit "error": null is the normal success shape and is treated
// the same as an absent error.
func (f *Frame) validateResponse() error {
	if f.Error != nil && !isJSONNull(f.Error) && !isJSONArray(f.Error) {
		return fmt.Errorf("response error field must be an array")
	}
	if f.Result == nil {
		return fmt.Errorf("response has no result field")
	}
	return nil
}

// validateWorkerName checks that a parameter is a printable-ASCII string
// no longer than MaxWorkerNameLength.
func validateWorkerName(raw json.RawMessage) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil || raw == nil || !isJSONString(raw) {
		return fmt.Errorf("worker name must be a string")
	}
	if len(name) > MaxWorkerNameLength {
		return fmt.Errorf("worker name exceeds %d bytes", MaxWorkerNameLength)
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7e {
			return fmt.Errorf("worker name contains non-printable byte 0x%02x", name[i])
		}
	}
	return nil
}

// validateHexParam checks that a parameter is an even-length string made
// entirely of hexadecimal digits.
func validateHexParam(raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || !isJSONString(raw) {
		return fmt.Errorf("must be a hex string")
	}
	if len(s)%2 != 0 {
		return fmt.Errorf("hex string has odd length %d", len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return fmt.Errorf("non-hex byte %q at offset %d", c, i)
		}
	}
	return nil
}

// validateDifficulty checks that a parameter is a positive integer.
// Floats, strings, zero and negatives are all rejected.
func validateDifficulty(raw json.RawMessage) error {
	// json.Number accepts quoted numerals, so string literals are ruled
	// out up front.
	if isJSONString(raw) {
		return fmt.Errorf("difficulty must be a number")
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("difficulty must be a number")
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("difficulty must be an integer")
	}
	if v <= 0 {
		return fmt.Errorf("difficulty must be positive, got %d", v)
	}
	return nil
}

// isJSONNull reports whether the raw value is the JSON literal null.
func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// isJSONString reports whether the raw value is a JSON string literal.
func isJSONString(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '"':
			return true
		default:
			return false
		}
	}
	return false
}
