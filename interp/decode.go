package interp

import (
	"errors"
	"fmt"
	"math"

	"go.jacobcolvin.com/bxj/binary"
	"go.jacobcolvin.com/bxj/jsonval"
	"go.jacobcolvin.com/bxj/schema"
)

// ErrNonFiniteFloat is wrapped when a decoded f32/f64 is NaN or
// infinite; the wire format has no representation for it on the JSON
// side, per §4.3.
var ErrNonFiniteFloat = errors.New("non-finite float")

// Decode reads the value named by decl from r according to s,
// producing a JSON-shaped value (nil, bool, float64/int64/uint64,
// string, []any, or map[string]any; u128/i128 decode as decimal
// strings). It consumes exactly the bytes decl describes.
func Decode(r *binary.Reader, s *schema.Schema, decl schema.Declaration) (any, error) {
	if schema.IsPrimitive(decl) {
		return decodePrimitive(r, decl)
	}

	def, err := s.Lookup(decl)
	if err != nil {
		return nil, err
	}

	switch def.Kind {
	case schema.KindArray:
		return decodeElements(r, s, def.Elements, int(def.Length))

	case schema.KindSequence:
		n, err := r.ReadSeqLen()
		if err != nil {
			return nil, err
		}

		return decodeElements(r, s, def.Elements, int(n))

	case schema.KindTuple:
		out := make([]any, len(def.TupleElements))

		for i, elem := range def.TupleElements {
			v, err := Decode(r, s, elem)
			if err != nil {
				return nil, err
			}

			out[i] = v
		}

		return out, nil

	case schema.KindEnum:
		idx, err := r.ReadVariantIndex()
		if err != nil {
			return nil, err
		}

		if int(idx) >= len(def.Variants) {
			return nil, &jsonval.EnumIndexOutOfRangeError{Index: int(idx)}
		}

		variant := def.Variants[idx]

		payload, err := Decode(r, s, variant.Payload)
		if err != nil {
			return nil, err
		}

		return map[string]any{variant.Name: payload}, nil

	case schema.KindStruct:
		switch def.Fields.Kind {
		case schema.NamedFields:
			out := make(map[string]any, len(def.Fields.Named))

			for _, f := range def.Fields.Named {
				v, err := Decode(r, s, f.Decl)
				if err != nil {
					return nil, err
				}

				out[f.Name] = v
			}

			return out, nil

		case schema.UnnamedFields:
			out := make([]any, len(def.Fields.Unnamed))

			for i, d := range def.Fields.Unnamed {
				v, err := Decode(r, s, d)
				if err != nil {
					return nil, err
				}

				out[i] = v
			}

			return out, nil

		case schema.EmptyFields:
			return []any{}, nil
		}
	}

	return nil, fmt.Errorf("interp: unreachable definition kind for %s", decl)
}

func decodeElements(r *binary.Reader, s *schema.Schema, elem schema.Declaration, n int) (any, error) {
	out := make([]any, n)

	for i := 0; i < n; i++ {
		v, err := Decode(r, s, elem)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

func decodePrimitive(r *binary.Reader, decl schema.Declaration) (any, error) {
	switch decl {
	case schema.U8:
		v, err := r.ReadU8()
		return uint64(v), err
	case schema.U16:
		v, err := r.ReadU16()
		return uint64(v), err
	case schema.U32:
		v, err := r.ReadU32()
		return uint64(v), err
	case schema.U64:
		return r.ReadU64()
	case schema.U128:
		v, err := r.ReadU128()
		if err != nil {
			return nil, err
		}

		return v.String(), nil
	case schema.I8:
		v, err := r.ReadU8()
		return int64(int8(v)), err
	case schema.I16:
		v, err := r.ReadU16()
		return int64(int16(v)), err
	case schema.I32:
		v, err := r.ReadU32()
		return int64(int32(v)), err
	case schema.I64:
		v, err := r.ReadU64()
		return int64(v), err
	case schema.I128:
		v, err := r.ReadI128()
		if err != nil {
			return nil, err
		}

		return v.String(), nil
	case schema.F32:
		v, err := r.ReadF32()
		if err != nil {
			return nil, err
		}

		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, ErrNonFiniteFloat
		}

		return f, nil
	case schema.F64:
		v, err := r.ReadF64()
		if err != nil {
			return nil, err
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNonFiniteFloat
		}

		return v, nil
	case schema.String:
		return r.ReadString()
	case schema.Bool:
		return r.ReadBool()
	default:
		return nil, fmt.Errorf("interp: unreachable primitive %s", decl)
	}
}
