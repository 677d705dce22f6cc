package schema

import (
	"errors"
	"fmt"

	"go.jacobcolvin.com/bxj/binary"
)

// definition tags, §4.2.
const (
	tagArray    = 0
	tagSequence = 1
	tagTuple    = 2
	tagEnum     = 3
	tagStruct   = 4
)

// struct fields tags, §4.2.
const (
	tagNamedFields   = 0
	tagUnnamedFields = 1
	tagEmptyFields   = 2
)

// ErrSchemaHeaderMismatch is wrapped when a decoded Definition or
// Fields tag byte does not belong to the known set.
var ErrSchemaHeaderMismatch = errors.New("schema header mismatch")

// Encode serializes s in its canonical Binary form: declaration as a
// string, then definitions as a Sequence of (string, Definition)
// pairs in table order, per §4.2. This must be bit-exact so that
// extract/pack/encode round-trip.
func Encode(s *Schema) []byte {
	w := binary.NewWriter()
	w.WriteString(s.Root)
	w.WriteSeqLen(uint32(s.Definitions.Len())) //nolint:gosec // definition counts are bounded by schema authorship, not attacker width.

	s.Definitions.Range(func(name Declaration, def Definition) bool {
		w.WriteString(name)
		encodeDefinition(w, def)

		return true
	})

	return w.Bytes()
}

func encodeDefinition(w *binary.Writer, def Definition) {
	switch def.Kind {
	case KindArray:
		w.WriteU8(tagArray)
		w.WriteU32(def.Length)
		w.WriteString(def.Elements)
	case KindSequence:
		w.WriteU8(tagSequence)
		w.WriteString(def.Elements)
	case KindTuple:
		w.WriteU8(tagTuple)
		w.WriteSeqLen(uint32(len(def.TupleElements))) //nolint:gosec
		for _, d := range def.TupleElements {
			w.WriteString(d)
		}
	case KindEnum:
		w.WriteU8(tagEnum)
		w.WriteSeqLen(uint32(len(def.Variants))) //nolint:gosec
		for _, v := range def.Variants {
			w.WriteString(v.Name)
			w.WriteString(v.Payload)
		}
	case KindStruct:
		w.WriteU8(tagStruct)
		encodeFields(w, def.Fields)
	}
}

func encodeFields(w *binary.Writer, f Fields) {
	switch f.Kind {
	case NamedFields:
		w.WriteU8(tagNamedFields)
		w.WriteSeqLen(uint32(len(f.Named))) //nolint:gosec
		for _, nf := range f.Named {
			w.WriteString(nf.Name)
			w.WriteString(nf.Decl)
		}
	case UnnamedFields:
		w.WriteU8(tagUnnamedFields)
		w.WriteSeqLen(uint32(len(f.Unnamed))) //nolint:gosec
		for _, d := range f.Unnamed {
			w.WriteString(d)
		}
	case EmptyFields:
		w.WriteU8(tagEmptyFields)
	}
}

// Decode reads a canonical Binary Schema from r, per §4.2. The
// returned Schema's Definitions preserves the on-wire order of the
// decoded pairs.
func Decode(r *binary.Reader) (*Schema, error) {
	root, err := r.ReadString()
	if err != nil {
		return nil, err
	}

	n, err := r.ReadSeqLen()
	if err != nil {
		return nil, err
	}

	defs := NewDefinitions()

	for i := uint32(0); i < n; i++ {
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}

		def, err := decodeDefinition(r)
		if err != nil {
			return nil, err
		}

		defs.Set(name, def)
	}

	return &Schema{Root: root, Definitions: defs}, nil
}

func decodeDefinition(r *binary.Reader) (Definition, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Definition{}, err
	}

	switch tag {
	case tagArray:
		length, err := r.ReadU32()
		if err != nil {
			return Definition{}, err
		}

		elems, err := r.ReadString()
		if err != nil {
			return Definition{}, err
		}

		return Definition{Kind: KindArray, Length: length, Elements: elems}, nil

	case tagSequence:
		elems, err := r.ReadString()
		if err != nil {
			return Definition{}, err
		}

		return Definition{Kind: KindSequence, Elements: elems}, nil

	case tagTuple:
		n, err := r.ReadSeqLen()
		if err != nil {
			return Definition{}, err
		}

		elems := make([]Declaration, n)
		for i := range elems {
			elems[i], err = r.ReadString()
			if err != nil {
				return Definition{}, err
			}
		}

		return Definition{Kind: KindTuple, TupleElements: elems}, nil

	case tagEnum:
		n, err := r.ReadSeqLen()
		if err != nil {
			return Definition{}, err
		}

		variants := make([]Variant, n)
		for i := range variants {
			name, err := r.ReadString()
			if err != nil {
				return Definition{}, err
			}

			payload, err := r.ReadString()
			if err != nil {
				return Definition{}, err
			}

			variants[i] = Variant{Name: name, Payload: payload}
		}

		return Definition{Kind: KindEnum, Variants: variants}, nil

	case tagStruct:
		fields, err := decodeFields(r)
		if err != nil {
			return Definition{}, err
		}

		return Definition{Kind: KindStruct, Fields: fields}, nil

	default:
		return Definition{}, fmt.Errorf("%w: unknown definition tag %d", ErrSchemaHeaderMismatch, tag)
	}
}

func decodeFields(r *binary.Reader) (Fields, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Fields{}, err
	}

	switch tag {
	case tagNamedFields:
		n, err := r.ReadSeqLen()
		if err != nil {
			return Fields{}, err
		}

		named := make([]NamedField, n)
		for i := range named {
			name, err := r.ReadString()
			if err != nil {
				return Fields{}, err
			}

			decl, err := r.ReadString()
			if err != nil {
				return Fields{}, err
			}

			named[i] = NamedField{Name: name, Decl: decl}
		}

		return Fields{Kind: NamedFields, Named: named}, nil

	case tagUnnamedFields:
		n, err := r.ReadSeqLen()
		if err != nil {
			return Fields{}, err
		}

		unnamed := make([]Declaration, n)
		for i := range unnamed {
			unnamed[i], err = r.ReadString()
			if err != nil {
				return Fields{}, err
			}
		}

		return Fields{Kind: UnnamedFields, Unnamed: unnamed}, nil

	case tagEmptyFields:
		return Fields{Kind: EmptyFields}, nil

	default:
		return Fields{}, fmt.Errorf("%w: unknown fields tag %d", ErrSchemaHeaderMismatch, tag)
	}
}
