// Package schema models the type-description tree that drives every
// higher-level codec in this module: a [Schema] is a root [Declaration]
// plus a [Definitions] table mapping every non-primitive name reachable
// from it to its [Definition].
//
// Definitions keeps its names in an ordered slice beside its lookup
// map, because the Schema's own Binary serialization ([Encode]/[Decode])
// must be bit-exact across repeated round-trips — a map iterates in
// randomized order and would make that impossible.
package schema
