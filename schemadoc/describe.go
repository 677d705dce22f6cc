package schemadoc

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/bxj/schema"
)

const (
	typeBoolean = "boolean"
	typeInteger = "integer"
	typeNumber  = "number"
	typeString  = "string"
	typeArray   = "array"
	typeObject  = "object"
)

var primitiveTypes = map[schema.Declaration]string{
	schema.U8: typeInteger, schema.U16: typeInteger, schema.U32: typeInteger, schema.U64: typeInteger,
	schema.I8: typeInteger, schema.I16: typeInteger, schema.I32: typeInteger, schema.I64: typeInteger,
	schema.U128: typeString, schema.I128: typeString, // transported as decimal strings, §4.3.
	schema.F32: typeNumber, schema.F64: typeNumber,
	schema.String: typeString,
	schema.Bool:   typeBoolean,
}

// Describe renders decl (resolved against s) as a Draft 2020-12 JSON
// Schema describing the shape interp.Decode would produce for it.
func Describe(s *schema.Schema, decl schema.Declaration) *jsonschema.Schema {
	return describe(s, decl, make(map[schema.Declaration]bool))
}

// describe recurses with a visiting set to bound recursive Schemas:
// once a Declaration is being described by an ancestor call, further
// occurrences render as the permissive schema rather than looping.
func describe(s *schema.Schema, decl schema.Declaration, visiting map[schema.Declaration]bool) *jsonschema.Schema {
	if t, ok := primitiveTypes[decl]; ok {
		return &jsonschema.Schema{Type: t}
	}

	if visiting[decl] {
		return &jsonschema.Schema{}
	}

	def, err := s.Lookup(decl)
	if err != nil {
		return &jsonschema.Schema{}
	}

	visiting[decl] = true
	defer delete(visiting, decl)

	switch def.Kind {
	case schema.KindArray:
		n := int(def.Length)

		return &jsonschema.Schema{
			Type:     typeArray,
			MinItems: &n,
			MaxItems: &n,
			Items:    describe(s, def.Elements, visiting),
		}

	case schema.KindSequence:
		return &jsonschema.Schema{
			Type:  typeArray,
			Items: describe(s, def.Elements, visiting),
		}

	case schema.KindTuple:
		prefix := make([]*jsonschema.Schema, len(def.TupleElements))
		for i, d := range def.TupleElements {
			prefix[i] = describe(s, d, visiting)
		}

		n := len(prefix)

		return &jsonschema.Schema{
			Type:        typeArray,
			PrefixItems: prefix,
			MinItems:    &n,
			MaxItems:    &n,
		}

	case schema.KindEnum:
		return describeEnum(s, def.Variants, visiting)

	case schema.KindStruct:
		return describeFields(s, def.Fields, visiting)
	}

	return &jsonschema.Schema{}
}

func describeEnum(s *schema.Schema, variants []schema.Variant, visiting map[schema.Declaration]bool) *jsonschema.Schema {
	options := make([]*jsonschema.Schema, len(variants))

	for i, v := range variants {
		if isEmptyPayload(s, v.Payload) {
			options[i] = &jsonschema.Schema{Const: jsonschema.Ptr[any](v.Name)}
			continue
		}

		options[i] = &jsonschema.Schema{
			Type:                 typeObject,
			Properties:           map[string]*jsonschema.Schema{v.Name: describe(s, v.Payload, visiting)},
			Required:             []string{v.Name},
			AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
		}
	}

	return &jsonschema.Schema{OneOf: options}
}

func isEmptyPayload(s *schema.Schema, decl schema.Declaration) bool {
	if schema.IsPrimitive(decl) {
		return false
	}

	def, err := s.Lookup(decl)
	if err != nil {
		return false
	}

	return def.Kind == schema.KindStruct && def.Fields.Kind == schema.EmptyFields
}

func describeFields(s *schema.Schema, f schema.Fields, visiting map[schema.Declaration]bool) *jsonschema.Schema {
	switch f.Kind {
	case schema.NamedFields:
		props := make(map[string]*jsonschema.Schema, len(f.Named))
		required := make([]string, len(f.Named))

		for i, field := range f.Named {
			props[field.Name] = describe(s, field.Decl, visiting)
			required[i] = field.Name
		}

		return &jsonschema.Schema{
			Type:                 typeObject,
			Properties:           props,
			Required:             required,
			AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
		}

	case schema.UnnamedFields:
		if len(f.Unnamed) == 1 {
			// Mirrors the encoder's single-unnamed-field shortcut: the
			// bare value, not the one-element array Decode emits.
			return describe(s, f.Unnamed[0], visiting)
		}

		prefix := make([]*jsonschema.Schema, len(f.Unnamed))
		for i, d := range f.Unnamed {
			prefix[i] = describe(s, d, visiting)
		}

		n := len(prefix)

		return &jsonschema.Schema{
			Type:        typeArray,
			PrefixItems: prefix,
			MinItems:    &n,
			MaxItems:    &n,
		}

	case schema.EmptyFields:
		return &jsonschema.Schema{Type: typeArray, MaxItems: jsonschema.Ptr(0)}
	}

	return &jsonschema.Schema{}
}
