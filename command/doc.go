// Package command composes binary, schema, interp, schemaless,
// compress, and schemadoc into the eight operations the CLI exposes:
// the six named in §4.7 (pack, unpack, encode, decode, extract, strip)
// plus the supplemented compile and describe operations.
//
// Every function here takes an already-open [io.Reader]/[io.Writer]
// pair and returns a single error; argument parsing and file/stdin/
// stdout selection are package cmd/bxj's job, per §1's explicit
// carve-out of those concerns from the core.
package command
