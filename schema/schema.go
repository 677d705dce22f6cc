package schema

import "errors"

// Declaration names a type: either one of the fixed primitive names or
// a key into a Schema's [Definitions].
type Declaration = string

// Primitive declarations. Any Declaration outside this set is a user
// declaration that must resolve via Definitions.
const (
	U8     Declaration = "u8"
	U16    Declaration = "u16"
	U32    Declaration = "u32"
	U64    Declaration = "u64"
	U128   Declaration = "u128"
	I8     Declaration = "i8"
	I16    Declaration = "i16"
	I32    Declaration = "i32"
	I64    Declaration = "i64"
	I128   Declaration = "i128"
	F32    Declaration = "f32"
	F64    Declaration = "f64"
	String Declaration = "string"
	Bool   Declaration = "bool"
)

var primitives = map[Declaration]bool{
	U8: true, U16: true, U32: true, U64: true, U128: true,
	I8: true, I16: true, I32: true, I64: true, I128: true,
	F32: true, F64: true, String: true, Bool: true,
}

// IsPrimitive reports whether d is one of the fixed primitive
// declarations.
func IsPrimitive(d Declaration) bool {
	return primitives[d]
}

// Kind tags the variant a [Definition] holds.
type Kind uint8

const (
	KindArray Kind = iota
	KindSequence
	KindTuple
	KindEnum
	KindStruct
)

// FieldsKind tags the variant a Struct [Definition]'s Fields holds.
type FieldsKind uint8

const (
	NamedFields FieldsKind = iota
	UnnamedFields
	EmptyFields
)

// Variant is one case of an Enum Definition. Name is never renamed by
// the compressor because it is user-facing in decoded JSON.
type Variant struct {
	Name    string
	Payload Declaration
}

// NamedField is one field of a Struct/NamedFields Definition. Name is
// never renamed by the compressor.
type NamedField struct {
	Name string
	Decl Declaration
}

// Fields is the payload of a Struct Definition.
type Fields struct {
	Kind    FieldsKind
	Named   []NamedField
	Unnamed []Declaration
}

// Definition is the structural description of a user type.
type Definition struct {
	Kind Kind

	// Array, Sequence
	Length   uint32
	Elements Declaration

	// Tuple
	TupleElements []Declaration

	// Enum
	Variants []Variant

	// Struct
	Fields Fields
}

// Definitions is an ordered table of user declarations. Order is
// significant: it is the order in which the Schema serializes and
// reproduces across round-trips (§4.2's Sequence of (string,
// Definition) pairs), so it is a slice rather than a map.
type Definitions struct {
	names []Declaration
	defs  map[Declaration]Definition
}

// NewDefinitions creates an empty, ordered definitions table.
func NewDefinitions() *Definitions {
	return &Definitions{defs: make(map[Declaration]Definition)}
}

// Set records or replaces the Definition for name, appending it to the
// end of iteration order the first time name is seen.
func (d *Definitions) Set(name Declaration, def Definition) {
	if _, ok := d.defs[name]; !ok {
		d.names = append(d.names, name)
	}

	d.defs[name] = def
}

// Get returns the Definition for name and whether it is present.
func (d *Definitions) Get(name Declaration) (Definition, bool) {
	def, ok := d.defs[name]
	return def, ok
}

// Len returns the number of entries.
func (d *Definitions) Len() int {
	return len(d.names)
}

// Names returns the declaration names in insertion order. The returned
// slice must not be mutated.
func (d *Definitions) Names() []Declaration {
	return d.names
}

// Range calls fn for each (name, Definition) pair in insertion order.
// Iteration stops early if fn returns false.
func (d *Definitions) Range(fn func(name Declaration, def Definition) bool) {
	for _, name := range d.names {
		if !fn(name, d.defs[name]) {
			return
		}
	}
}

// Schema is a root Declaration plus the Definitions table needed to
// resolve every non-primitive Declaration reachable from it.
type Schema struct {
	Root        Declaration
	Definitions *Definitions
}

// ErrSchemaDangling is the sentinel wrapped when a Declaration names
// neither a primitive nor an entry of a Schema's Definitions.
var ErrSchemaDangling = errors.New("schema dangling reference")

// DanglingError reports a Declaration with no resolution.
type DanglingError struct {
	Name Declaration
}

func (e *DanglingError) Error() string {
	return ErrSchemaDangling.Error() + ": " + e.Name
}

func (e *DanglingError) Unwrap() error {
	return ErrSchemaDangling
}

// Lookup resolves d against s: primitives resolve to the zero
// Definition and a nil error (callers dispatch on IsPrimitive first),
// user declarations resolve through s.Definitions, and anything else
// is a [DanglingError].
func (s *Schema) Lookup(d Declaration) (Definition, error) {
	if IsPrimitive(d) {
		return Definition{}, nil
	}

	def, ok := s.Definitions.Get(d)
	if !ok {
		return Definition{}, &DanglingError{Name: d}
	}

	return def, nil
}

// Validate walks every Declaration transitively reachable from s.Root
// and confirms it is either primitive or present in s.Definitions.
// Cycles are permitted; each reachable name is visited once.
func (s *Schema) Validate() error {
	seen := make(map[Declaration]bool)

	var walk func(Declaration) error
	walk = func(d Declaration) error {
		if IsPrimitive(d) || seen[d] {
			return nil
		}

		seen[d] = true

		def, ok := s.Definitions.Get(d)
		if !ok {
			return &DanglingError{Name: d}
		}

		for _, ref := range references(def) {
			if err := walk(ref); err != nil {
				return err
			}
		}

		return nil
	}

	return walk(s.Root)
}

// references returns every Declaration a Definition points to.
func references(def Definition) []Declaration {
	switch def.Kind {
	case KindArray, KindSequence:
		return []Declaration{def.Elements}
	case KindTuple:
		return def.TupleElements
	case KindEnum:
		refs := make([]Declaration, len(def.Variants))
		for i, v := range def.Variants {
			refs[i] = v.Payload
		}

		return refs
	case KindStruct:
		switch def.Fields.Kind {
		case NamedFields:
			refs := make([]Declaration, len(def.Fields.Named))
			for i, f := range def.Fields.Named {
				refs[i] = f.Decl
			}

			return refs
		case UnnamedFields:
			return def.Fields.Unnamed
		case EmptyFields:
			return nil
		}
	}

	return nil
}
