package compress

import (
	"go.jacobcolvin.com/bxj/schema"
)

// nameAllocator hands out the next valid Unicode scalar value as a
// one-rune string, skipping code points (e.g. the surrogate range)
// that are not valid scalars.
type nameAllocator struct {
	next rune
}

func (a *nameAllocator) allocate() string {
	for !isValidScalar(a.next) {
		a.next++
	}

	name := string(a.next)
	a.next++

	return name
}

func isValidScalar(r rune) bool {
	return r >= 0 && r <= 0x10FFFF && !(r >= 0xD800 && r <= 0xDFFF)
}

// Compress returns a new Schema equivalent to s in which every
// non-primitive Declaration has been renamed to a short symbol,
// per §4.6.
func Compress(s *schema.Schema) *schema.Schema {
	mapping := make(map[schema.Declaration]schema.Declaration)
	alloc := &nameAllocator{}

	queue := []schema.Declaration{s.Root}

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		if schema.IsPrimitive(d) {
			continue
		}

		if _, seen := mapping[d]; seen {
			continue
		}

		mapping[d] = alloc.allocate()

		def, ok := s.Definitions.Get(d)
		if !ok {
			continue
		}

		queue = append(queue, referencedDeclarations(def)...)
	}

	newDefs := schema.NewDefinitions()

	for _, oldName := range s.Definitions.Names() {
		newName, reachable := mapping[oldName]
		if !reachable {
			continue
		}

		oldDef, _ := s.Definitions.Get(oldName)
		newDefs.Set(newName, rewriteDefinition(oldDef, mapping))
	}

	return &schema.Schema{Root: mapping[s.Root], Definitions: newDefs}
}

func rewrite(d schema.Declaration, mapping map[schema.Declaration]schema.Declaration) schema.Declaration {
	if schema.IsPrimitive(d) {
		return d
	}

	if n, ok := mapping[d]; ok {
		return n
	}

	return d
}

func rewriteDefinition(def schema.Definition, mapping map[schema.Declaration]schema.Declaration) schema.Definition {
	switch def.Kind {
	case schema.KindArray:
		return schema.Definition{Kind: schema.KindArray, Length: def.Length, Elements: rewrite(def.Elements, mapping)}

	case schema.KindSequence:
		return schema.Definition{Kind: schema.KindSequence, Elements: rewrite(def.Elements, mapping)}

	case schema.KindTuple:
		elems := make([]schema.Declaration, len(def.TupleElements))
		for i, d := range def.TupleElements {
			elems[i] = rewrite(d, mapping)
		}

		return schema.Definition{Kind: schema.KindTuple, TupleElements: elems}

	case schema.KindEnum:
		variants := make([]schema.Variant, len(def.Variants))
		for i, v := range def.Variants {
			variants[i] = schema.Variant{Name: v.Name, Payload: rewrite(v.Payload, mapping)}
		}

		return schema.Definition{Kind: schema.KindEnum, Variants: variants}

	case schema.KindStruct:
		return schema.Definition{Kind: schema.KindStruct, Fields: rewriteFields(def.Fields, mapping)}
	}

	return def
}

func rewriteFields(f schema.Fields, mapping map[schema.Declaration]schema.Declaration) schema.Fields {
	switch f.Kind {
	case schema.NamedFields:
		named := make([]schema.NamedField, len(f.Named))
		for i, nf := range f.Named {
			named[i] = schema.NamedField{Name: nf.Name, Decl: rewrite(nf.Decl, mapping)}
		}

		return schema.Fields{Kind: schema.NamedFields, Named: named}

	case schema.UnnamedFields:
		unnamed := make([]schema.Declaration, len(f.Unnamed))
		for i, d := range f.Unnamed {
			unnamed[i] = rewrite(d, mapping)
		}

		return schema.Fields{Kind: schema.UnnamedFields, Unnamed: unnamed}

	case schema.EmptyFields:
		return schema.Fields{Kind: schema.EmptyFields}
	}

	return f
}

func referencedDeclarations(def schema.Definition) []schema.Declaration {
	switch def.Kind {
	case schema.KindArray, schema.KindSequence:
		return []schema.Declaration{def.Elements}

	case schema.KindTuple:
		return append([]schema.Declaration(nil), def.TupleElements...)

	case schema.KindEnum:
		refs := make([]schema.Declaration, len(def.Variants))
		for i, v := range def.Variants {
			refs[i] = v.Payload
		}

		return refs

	case schema.KindStruct:
		switch def.Fields.Kind {
		case schema.NamedFields:
			refs := make([]schema.Declaration, len(def.Fields.Named))
			for i, f := range def.Fields.Named {
				refs[i] = f.Decl
			}

			return refs

		case schema.UnnamedFields:
			return append([]schema.Declaration(nil), def.Fields.Unnamed...)
		}
	}

	return nil
}
