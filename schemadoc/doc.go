// Package schemadoc renders a [schema.Schema] as a
// [github.com/google/jsonschema-go/jsonschema.Schema] describing the
// JSON shape of its values. An Enum variant with an empty Struct payload
// is rendered as a bare string and a single-unnamed-field Struct as that
// field's value, the forms [interp.Encode] accepts; [interp.Decode]
// emits the one-key object and the one-element array for those. It is
// the backing
// implementation of the supplemented `describe` command and repurposes
// the structural-type-to-JSON-Schema mapping approach
// the teacher's magicschema generator uses for YAML, aimed at
// a Binary Schema instead.
package schemadoc
