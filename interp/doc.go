// Package interp implements the schema-driven decoder and encoder: a
// pair of recursive-descent walkers that, given a [schema.Schema] and
// either a [binary.Reader] or a JSON value (as produced by package
// jsonval), produce the other representation by following every
// Declaration edge, including recursive user-defined types.
//
// Decode and Encode are the only two entry points; everything else is
// an unexported dispatch on [schema.Kind]. Neither function
// materializes the type tree — each call dispatches on the current
// Declaration string and recurses, so recursive Schemas terminate as
// long as the value being walked does.
package interp
