// Package binary implements the fixed-width, little-endian primitive
// encoding that every higher-level wire format in this module builds on:
// the Schema's own serialization (package schema), and the schema-driven
// and schema-less value encodings (packages interp and schemaless).
//
// A [Reader] walks a byte slice with a cursor that only ever advances;
// a [Writer] only ever appends. Neither type retains any state beyond
// that cursor, so callers compose primitive reads/writes directly into
// the recursive descent the higher-level codecs perform.
//
// Short reads, invalid UTF-8 string bodies, and out-of-range bool bytes
// all surface as a [DecodeMalformedError] naming the primitive type that
// failed, per the diagnostic requirement that every decode failure name
// the declaration under inspection.
package binary
