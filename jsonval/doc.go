// Package jsonval is the JSON boundary shared by the schema-driven and
// schema-less encoders: it parses and marshals JSON text via
// [github.com/goccy/go-json], and exposes the shape-checked accessors
// (Uint64, Int64, Array, Object, ...) both encoders use to walk an
// already-parsed JSON value.
//
// Parsed values live in the familiar null/bool/number/string/array/
// object domain as plain Go any/[]any/map[string]any, with one
// deliberate exception: numbers parse as [json.Number] rather than
// float64, because float64 cannot represent integers above 2^53
// exactly and the encoder's u64/i64 paths require exact range checks.
// 128-bit integers are JSON strings, not numbers, per the wire format,
// and are parsed on demand with [BigUint]/[BigInt].
//
// Object key order is not preserved across a parse: map[string]any has
// no order, matching this module's stated non-goal of order
// preservation through a map-backed intermediate.
package jsonval
