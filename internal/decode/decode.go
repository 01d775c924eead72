// Package decode implements the untyped-JSON object cursor the versioned
// entity models are built on. A cursor wraps one JSON object, accumulates
// issues with full JSON Pointer paths instead of stopping at the first
// violation, and hands nested objects/lists back to the caller for recursive
// construction.
package decode

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/reoring/madmp/codec"
	"github.com/reoring/madmp/issue"
)

// Object is a cursor over a single decoded JSON object. Unknown keys are
// ignored; each accessor validates one declared field and records issues on
// the cursor.
type Object struct {
	path issue.Path
	m    map[string]any
	iss  issue.Issues
}

// Obj wraps v as an object cursor rooted at path. When v is not a JSON
// object the returned cursor is nil and the issue describes the mismatch.
func Obj(path issue.Path, v any) (*Object, issue.Issues) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, issue.Issues{issue.At(path, issue.CodeInvalidType, "expected object", map[string]any{"got": typeName(v)})}
	}
	return &Object{path: path, m: m}, nil
}

// Path returns the cursor's base path.
func (o *Object) Path() issue.Path { return o.path }

// Issues returns everything recorded so far, nil when the object is clean.
func (o *Object) Issues() issue.Issues {
	if len(o.iss) == 0 {
		return nil
	}
	return o.iss
}

// Report records an extra issue at the given field of this object.
func (o *Object) Report(key, code, msg string, params map[string]any) {
	o.iss = issue.Append(o.iss, issue.At(o.path.Field(key), code, msg, params))
}

// ReportIndex records an extra issue at one element of a list-valued field.
func (o *Object) ReportIndex(key string, i int, code, msg string, params map[string]any) {
	o.iss = issue.Append(o.iss, issue.At(o.path.Field(key).Index(i), code, msg, params))
}

// HasString reports whether key is present and holds a string, without
// recording an issue. Cross-field checks use it to fire on present-but-empty
// values while staying silent after a missing/mistyped report.
func (o *Object) HasString(key string) bool {
	_, ok := o.m[key].(string)
	return ok
}

func (o *Object) missing(key string) {
	o.Report(key, issue.CodeRequired, "required field is missing", nil)
}

func (o *Object) badType(key string, v any, want string) {
	o.Report(key, issue.CodeInvalidType, "expected "+want, map[string]any{"got": typeName(v)})
}

// ReqString returns the required string field, recording an issue and
// returning "" when absent or mistyped.
func (o *Object) ReqString(key string) string {
	v, ok := o.m[key]
	if !ok {
		o.missing(key)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		o.badType(key, v, "string")
		return ""
	}
	return s
}

// OptString returns the optional string field, nil when absent.
func (o *Object) OptString(key string) *string {
	v, ok := o.m[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		o.badType(key, v, "string")
		return nil
	}
	return &s
}

// ReqEnum returns the required field constrained to the allowed set.
func (o *Object) ReqEnum(key string, allowed ...string) string {
	s := o.ReqString(key)
	if s == "" {
		return ""
	}
	if !contains(allowed, s) {
		o.Report(key, issue.CodeInvalidEnum, fmt.Sprintf("value %q is not one of %v", s, allowed), map[string]any{"got": s, "allowed": allowed})
		return ""
	}
	return s
}

// OptEnum returns the optional field constrained to the allowed set.
func (o *Object) OptEnum(key string, allowed ...string) *string {
	s := o.OptString(key)
	if s == nil {
		return nil
	}
	if !contains(allowed, *s) {
		o.Report(key, issue.CodeInvalidEnum, fmt.Sprintf("value %q is not one of %v", *s, allowed), map[string]any{"got": *s, "allowed": allowed})
		return nil
	}
	return s
}

// ReqTimestamp returns the required ISO-8601 timestamp field.
func (o *Object) ReqTimestamp(key string) codec.Timestamp {
	s := o.ReqString(key)
	if s == "" {
		return codec.Timestamp{}
	}
	ts, err := codec.ParseTimestamp(s)
	if err != nil {
		o.Report(key, issue.CodeInvalidFormat, err.Error(), map[string]any{"got": s})
		return codec.Timestamp{}
	}
	return ts
}

// OptTimestamp returns the optional ISO-8601 timestamp field, nil when absent.
func (o *Object) OptTimestamp(key string) *codec.Timestamp {
	s := o.OptString(key)
	if s == nil {
		return nil
	}
	ts, err := codec.ParseTimestamp(*s)
	if err != nil {
		o.Report(key, issue.CodeInvalidFormat, err.Error(), map[string]any{"got": *s})
		return nil
	}
	return &ts
}

// ReqDate returns the required ISO-8601 date field.
func (o *Object) ReqDate(key string) codec.Date {
	s := o.ReqString(key)
	if s == "" {
		return codec.Date{}
	}
	d, err := codec.ParseDate(s)
	if err != nil {
		o.Report(key, issue.CodeInvalidFormat, err.Error(), map[string]any{"got": s})
		return codec.Date{}
	}
	return d
}

// OptDate returns the optional ISO-8601 date field, nil when absent.
func (o *Object) OptDate(key string) *codec.Date {
	s := o.OptString(key)
	if s == nil {
		return nil
	}
	d, err := codec.ParseDate(*s)
	if err != nil {
		o.Report(key, issue.CodeInvalidFormat, err.Error(), map[string]any{"got": *s})
		return nil
	}
	return &d
}

// OptNumber returns the optional numeric field, nil when absent. Both
// json.Number (UseNumber decoding) and float64 inputs are accepted.
func (o *Object) OptNumber(key string) *float64 {
	v, ok := o.m[key]
	if !ok {
		return nil
	}
	f, err := asFloat(v)
	if err != nil {
		o.badType(key, v, "number")
		return nil
	}
	return &f
}

// OptInt returns the optional integral numeric field, nil when absent.
func (o *Object) OptInt(key string) *int64 {
	v, ok := o.m[key]
	if !ok {
		return nil
	}
	n, err := asInt(v)
	if err != nil {
		o.badType(key, v, "integer")
		return nil
	}
	return &n
}

// OptStringList returns the optional list-of-strings field, nil when absent.
// When present the minimum length applies, so an empty optional list is
// rejected rather than silently collapsing to "absent".
func (o *Object) OptStringList(key string, min int) []string {
	v, ok := o.m[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		o.badType(key, v, "array")
		return nil
	}
	if len(raw) < min {
		o.Report(key, issue.CodeTooShort, fmt.Sprintf("list must contain at least %d element(s)", min), map[string]any{"min": min, "got": len(raw)})
		return nil
	}
	out := make([]string, 0, len(raw))
	for i, e := range raw {
		s, ok := e.(string)
		if !ok {
			o.iss = issue.Append(o.iss, issue.At(o.path.Field(key).Index(i), issue.CodeInvalidType, "expected string", map[string]any{"got": typeName(e)}))
			continue
		}
		out = append(out, s)
	}
	return out
}

// ReqStringList returns the required list-of-strings field with a minimum
// length.
func (o *Object) ReqStringList(key string, min int) []string {
	if _, ok := o.m[key]; !ok {
		o.missing(key)
		return nil
	}
	return o.OptStringList(key, min)
}

// ReqList returns the raw elements of a required array field, enforcing the
// minimum length. The caller decodes each element at o.Path().Field(key).Index(i).
func (o *Object) ReqList(key string, min int) []any {
	v, ok := o.m[key]
	if !ok {
		o.missing(key)
		return nil
	}
	return o.list(key, v, min)
}

// OptList behaves like ReqList for an optional field: nil when absent, the
// minimum length still applies when present.
func (o *Object) OptList(key string, min int) []any {
	v, ok := o.m[key]
	if !ok {
		return nil
	}
	return o.list(key, v, min)
}

func (o *Object) list(key string, v any, min int) []any {
	raw, ok := v.([]any)
	if !ok {
		o.badType(key, v, "array")
		return nil
	}
	if len(raw) < min {
		o.Report(key, issue.CodeTooShort, fmt.Sprintf("list must contain at least %d element(s)", min), map[string]any{"min": min, "got": len(raw)})
		return nil
	}
	return raw
}

// ReqObject returns the raw value of a required object-valued field together
// with its path, for recursive construction by the caller.
func (o *Object) ReqObject(key string) (any, issue.Path, bool) {
	v, ok := o.m[key]
	if !ok {
		o.missing(key)
		return nil, issue.Path{}, false
	}
	return v, o.path.Field(key), true
}

// OptObject is ReqObject for an optional field.
func (o *Object) OptObject(key string) (any, issue.Path, bool) {
	v, ok := o.m[key]
	if !ok {
		return nil, issue.Path{}, false
	}
	return v, o.path.Field(key), true
}

// Merge folds issues produced by nested construction into this cursor.
func (o *Object) Merge(err error) {
	if err == nil {
		return
	}
	if iss, ok := issue.As(err); ok {
		o.iss = issue.Append(o.iss, iss...)
		return
	}
	o.iss = issue.Append(o.iss, issue.Issue{Path: o.path.Pointer(), Code: issue.CodeInvalidType, Message: err.Error(), Cause: err})
}

func contains(allowed []string, s string) bool {
	for _, a := range allowed {
		if a == s {
			return true
		}
	}
	return false
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("not a number")
	}
}

func asInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case float64:
		i := int64(n)
		if float64(i) != n {
			return 0, fmt.Errorf("not an integer")
		}
		return i, nil
	default:
		return 0, fmt.Errorf("not a number")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return strconv.Quote(fmt.Sprintf("%T", v))
	}
}
