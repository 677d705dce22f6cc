// Package schemaless implements the best-effort, lossy JSON-to-Binary
// encoder used when no Schema is supplied: every value is encoded
// according to its own runtime JSON shape rather than a declared
// Declaration, per §4.5.
//
// This mode cannot express optionality or tagged unions, and its
// encoding of JSON objects depends on Go's (unspecified) map
// iteration order and omits both keys and a length prefix — it exists
// solely as a last-resort fallback, never as a round-trippable format.
package schemaless
