package jsonval

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	json "github.com/goccy/go-json"
)

// Number is the exact-precision representation JSON numbers parse
// into; re-exported so callers never import goccy/go-json directly.
type Number = json.Number

// ErrJSONParseFailure is wrapped when input bytes are not valid JSON.
var ErrJSONParseFailure = errors.New("json parse failure")

// Parse reads exactly one JSON value from r, using [json.Number] for
// the number domain so integers above 2^53 survive intact.
func Parse(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJSONParseFailure, err)
	}

	return v, nil
}

// ParseBytes is Parse over an in-memory buffer.
func ParseBytes(b []byte) (any, error) {
	return Parse(bytes.NewReader(b))
}

// Marshal renders v as compact JSON.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent renders v as two-space-indented JSON.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// ErrExpectationMismatch is the sentinel wrapped when a JSON value's
// runtime shape does not match what the Declaration under inspection
// requires.
var ErrExpectationMismatch = errors.New("expectation mismatch")

// ExpectationError reports the shape a JSON value was required to
// have. Kind is one of Number, String, Boolean, Array, Object, or
// "array of length N" for the fixed-length Array case.
type ExpectationError struct {
	Kind string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("%s: expected %s", ErrExpectationMismatch, e.Kind)
}

func (e *ExpectationError) Unwrap() error {
	return ErrExpectationMismatch
}

func mismatch(kind string) error {
	return &ExpectationError{Kind: kind}
}

// ErrEnumVariantUnknown is wrapped when an encoder is given a variant
// name absent from the Enum's declared variants.
var ErrEnumVariantUnknown = errors.New("enum variant unknown")

// EnumVariantUnknownError names the unresolved variant.
type EnumVariantUnknownError struct {
	Name string
}

func (e *EnumVariantUnknownError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEnumVariantUnknown, e.Name)
}

func (e *EnumVariantUnknownError) Unwrap() error {
	return ErrEnumVariantUnknown
}

// ErrEnumIndexOutOfRange is wrapped when a decoder reads a variant
// index beyond the Enum's declared variant count.
var ErrEnumIndexOutOfRange = errors.New("enum index out of range")

// EnumIndexOutOfRangeError names the offending index.
type EnumIndexOutOfRangeError struct {
	Index int
}

func (e *EnumIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %d", ErrEnumIndexOutOfRange, e.Index)
}

func (e *EnumIndexOutOfRangeError) Unwrap() error {
	return ErrEnumIndexOutOfRange
}

// Bool requires v to be a JSON bool.
func Bool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch("Boolean")
	}

	return b, nil
}

// String requires v to be a JSON string.
func String(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch("String")
	}

	return s, nil
}

// Array requires v to be a JSON array of any length.
func Array(v any) ([]any, error) {
	a, ok := v.([]any)
	if !ok {
		return nil, mismatch("Array")
	}

	return a, nil
}

// ArrayOfLength requires v to be a JSON array of exactly n elements.
func ArrayOfLength(v any, n int) ([]any, error) {
	a, err := Array(v)
	if err != nil {
		return nil, err
	}

	if len(a) != n {
		return nil, mismatch(fmt.Sprintf("array of length %d", n))
	}

	return a, nil
}

// Object requires v to be a JSON object.
func Object(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, mismatch("Object")
	}

	return m, nil
}

func number(v any) (Number, error) {
	n, ok := v.(Number)
	if !ok {
		return "", mismatch("Number")
	}

	return n, nil
}

// Uint64 requires v to be a non-negative JSON integer fitting u64.
func Uint64(v any) (uint64, error) {
	n, err := number(v)
	if err != nil {
		return 0, err
	}

	u, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, mismatch("Number")
	}

	return u, nil
}

// Int64 requires v to be a JSON integer fitting i64.
func Int64(v any) (int64, error) {
	n, err := number(v)
	if err != nil {
		return 0, err
	}

	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, mismatch("Number")
	}

	return i, nil
}

// Float64 requires v to be a JSON number, returning its f64 value.
func Float64(v any) (float64, error) {
	n, err := number(v)
	if err != nil {
		return 0, err
	}

	f, err := n.Float64()
	if err != nil {
		return 0, mismatch("Number")
	}

	return f, nil
}

// IsIntegral reports whether v is a JSON number written without a
// fractional part or exponent, i.e. it is a candidate for u64/i64
// narrowing rather than f64. The check is lexical, matching the
// best-effort nature of the schema-less encoder this feeds.
func IsIntegral(v any) bool {
	n, err := number(v)
	if err != nil {
		return false
	}

	for _, c := range n.String() {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}

	return true
}

// BigUint requires v to be a JSON string holding a non-negative
// base-10 integer, the transport form for u128.
func BigUint(v any) (*big.Int, error) {
	s, err := String(v)
	if err != nil {
		return nil, err
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, mismatch("String")
	}

	return n, nil
}

// BigInt requires v to be a JSON string holding a base-10 integer,
// the transport form for i128.
func BigInt(v any) (*big.Int, error) {
	s, err := String(v)
	if err != nil {
		return nil, err
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, mismatch("String")
	}

	return n, nil
}
