package stratum

import (
	"encoding/json"
	"fmt"
)

// Methods a client may invoke. Any other method is rejected.
const (
	MethodSubscribe           = "mining.subscribe"
	MethodAuthorize           = "mining.authorize"
	MethodConfigure           = "mining.configure"
	MethodSubmit              = "mining.submit"
	MethodExtranonceSubscribe = "mining.extranonce.subscribe"
)

// MaxWorkerNameLength is the longest worker name accepted during
// authorization and share submission.
const MaxWorkerNameLength = 64

// Frame is a single decoded Stratum message. Fields are kept as raw JSON
// so that field presence (including explicit null) survives decoding: a
// nil field means the key was absent, a non-nil field means it was present
// even if its value is null. An id of 0 is therefore present, not missing.
type Frame struct {
	ID     json.RawMessage `json:"id"`
	Method json.RawMessage `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// Parse decodes a raw frame into a Frame. It fails if the input is not a
// JSON object; it performs no protocol-level validation beyond that.
func Parse(raw []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("frame is not a JSON object: %w", err)
	}
	return &f, nil
}

// IsRequest reports whether the frame carries a method field and is
// therefore classified as a request rather than a response.
func (f *Frame) IsRequest() bool {
	return f.Method != nil
}

// MethodName returns the decoded method string, or "" if the frame has no
// method or the method is not a JSON string.
func (f *Frame) MethodName() string {
	if f.Method == nil {
		return ""
	}
	var m string
	if err := json.Unmarshal(f.Method, &m); err != nil {
		return ""
	}
	return m
}

// WorkerName returns the worker name from an authorize or submit request.
// The second return is false when the frame is not such a request or the
// first parameter is not a string.
func (f *Frame) WorkerName() (string, bool) {
	switch f.MethodName() {
	case MethodAuthorize, MethodSubmit:
	default:
		return "", false
	}
	params, err := f.paramsArray()
	if err != nil || len(params) == 0 {
		return "", false
	}
	var name string
	if err := json.Unmarshal(params[0], &name); err != nil {
		return "", false
	}
	return name, true
}

// paramsArray decodes the params field as an ordered sequence. A null or
// non-array params field is an error.
func (f *Frame) paramsArray() ([]json.RawMessage, error) {
	if f.Params == nil {
		return nil, fmt.Errorf("params field is missing")
	}
	if !isJSONArray(f.Params) {
		return nil, fmt.Errorf("params is not an array")
	}
	var params []json.RawMessage
	if err := json.Unmarshal(f.Params, &params); err != nil {
		return nil, fmt.Errorf("params is not an array")
	}
	return params, nil
}

// isJSONArray reports whether the raw value is a JSON array. Unmarshal
// into a slice accepts null silently, so array-ness is checked on the
// leading token instead.
func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
