// Package compress implements the schema compressor of §4.6: it
// produces a new [schema.Schema] in which every non-primitive
// Declaration is replaced by a short symbolic name drawn from a
// monotonic Unicode code-point counter, while leaving Enum variant
// names and Struct field names untouched because those are
// user-facing once a value decodes to JSON.
//
// Reachability is traversed with an explicit FIFO work queue (a
// breadth-first walk from the root), not the depth-first stack a
// reader might expect from a naive recursive implementation — the
// two orders produce different but structurally equivalent name
// assignments, and this package follows the queue form.
package compress
