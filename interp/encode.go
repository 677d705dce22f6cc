package interp

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"go.jacobcolvin.com/bxj/binary"
	"go.jacobcolvin.com/bxj/jsonval"
	"go.jacobcolvin.com/bxj/schema"
)

// ErrStructFieldMissing is wrapped when a JSON object passed to a
// Struct/NamedFields encode is missing a declared field.
var ErrStructFieldMissing = errors.New("struct field missing")

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	minI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	maxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// Encode appends the Binary encoding of v, interpreted under decl
// according to s, to w.
func Encode(w *binary.Writer, v any, s *schema.Schema, decl schema.Declaration) error {
	if schema.IsPrimitive(decl) {
		return encodePrimitive(w, v, decl)
	}

	def, err := s.Lookup(decl)
	if err != nil {
		return err
	}

	switch def.Kind {
	case schema.KindArray:
		elems, err := jsonval.ArrayOfLength(v, int(def.Length))
		if err != nil {
			return err
		}

		return encodeEach(w, elems, s, def.Elements)

	case schema.KindSequence:
		elems, err := jsonval.Array(v)
		if err != nil {
			return err
		}

		w.WriteSeqLen(uint32(len(elems))) //nolint:gosec // sequence lengths are schema/value-bounded, not attacker width.

		return encodeEach(w, elems, s, def.Elements)

	case schema.KindTuple:
		elems, err := jsonval.ArrayOfLength(v, len(def.TupleElements))
		if err != nil {
			return err
		}

		for i, d := range def.TupleElements {
			if err := Encode(w, elems[i], s, d); err != nil {
				return err
			}
		}

		return nil

	case schema.KindEnum:
		return encodeEnum(w, v, s, def.Variants)

	case schema.KindStruct:
		return encodeStruct(w, v, s, def.Fields)
	}

	return fmt.Errorf("interp: unreachable definition kind for %s", decl)
}

func encodeEach(w *binary.Writer, elems []any, s *schema.Schema, decl schema.Declaration) error {
	for _, e := range elems {
		if err := Encode(w, e, s, decl); err != nil {
			return err
		}
	}

	return nil
}

func encodeEnum(w *binary.Writer, v any, s *schema.Schema, variants []schema.Variant) error {
	var (
		name    string
		payload any
	)

	switch val := v.(type) {
	case string:
		name, payload = val, nil
	case map[string]any:
		if len(val) != 1 {
			return jsonval.ErrExpectationMismatch
		}

		for k, p := range val {
			name, payload = k, p
		}
	default:
		return fmt.Errorf("%w: Object or String", jsonval.ErrExpectationMismatch)
	}

	for i, variant := range variants {
		if variant.Name != name {
			continue
		}

		w.WriteVariantIndex(uint8(i)) //nolint:gosec // variant counts are bounded to 256 by the wire format itself.

		return Encode(w, payload, s, variant.Payload)
	}

	return &jsonval.EnumVariantUnknownError{Name: name}
}

func encodeStruct(w *binary.Writer, v any, s *schema.Schema, f schema.Fields) error {
	switch f.Kind {
	case schema.NamedFields:
		obj, err := jsonval.Object(v)
		if err != nil {
			return err
		}

		for _, field := range f.Named {
			fv, ok := obj[field.Name]
			if !ok {
				return fmt.Errorf("%w: %s", ErrStructFieldMissing, field.Name)
			}

			if err := Encode(w, fv, s, field.Decl); err != nil {
				return err
			}
		}

		return nil

	case schema.UnnamedFields:
		if len(f.Unnamed) == 1 {
			return Encode(w, v, s, f.Unnamed[0])
		}

		elems, err := jsonval.ArrayOfLength(v, len(f.Unnamed))
		if err != nil {
			return err
		}

		for i, d := range f.Unnamed {
			if err := Encode(w, elems[i], s, d); err != nil {
				return err
			}
		}

		return nil

	case schema.EmptyFields:
		return nil
	}

	return fmt.Errorf("interp: unreachable fields kind")
}

func encodePrimitive(w *binary.Writer, v any, decl schema.Declaration) error {
	switch decl {
	case schema.U8:
		u, err := jsonval.Uint64(v)
		if err != nil {
			return err
		}

		if u > math.MaxUint8 {
			return fmt.Errorf("%w: Number", jsonval.ErrExpectationMismatch)
		}

		w.WriteU8(uint8(u))

	case schema.U16:
		u, err := jsonval.Uint64(v)
		if err != nil {
			return err
		}

		if u > math.MaxUint16 {
			return fmt.Errorf("%w: Number", jsonval.ErrExpectationMismatch)
		}

		w.WriteU16(uint16(u))

	case schema.U32:
		u, err := jsonval.Uint64(v)
		if err != nil {
			return err
		}

		if u > math.MaxUint32 {
			return fmt.Errorf("%w: Number", jsonval.ErrExpectationMismatch)
		}

		w.WriteU32(uint32(u))

	case schema.U64:
		u, err := jsonval.Uint64(v)
		if err != nil {
			return err
		}

		w.WriteU64(u)

	case schema.U128:
		n, err := jsonval.BigUint(v)
		if err != nil {
			return err
		}

		if n.Cmp(maxU128) > 0 {
			return fmt.Errorf("%w: String", jsonval.ErrExpectationMismatch)
		}

		w.WriteU128(n)

	case schema.I8:
		i, err := jsonval.Int64(v)
		if err != nil {
			return err
		}

		if i < math.MinInt8 || i > math.MaxInt8 {
			return fmt.Errorf("%w: Number", jsonval.ErrExpectationMismatch)
		}

		w.WriteU8(uint8(int8(i)))

	case schema.I16:
		i, err := jsonval.Int64(v)
		if err != nil {
			return err
		}

		if i < math.MinInt16 || i > math.MaxInt16 {
			return fmt.Errorf("%w: Number", jsonval.ErrExpectationMismatch)
		}

		w.WriteU16(uint16(int16(i)))

	case schema.I32:
		i, err := jsonval.Int64(v)
		if err != nil {
			return err
		}

		if i < math.MinInt32 || i > math.MaxInt32 {
			return fmt.Errorf("%w: Number", jsonval.ErrExpectationMismatch)
		}

		w.WriteU32(uint32(int32(i)))

	case schema.I64:
		// as_i64, not as_u64: negative JSON numbers must be accepted here.
		i, err := jsonval.Int64(v)
		if err != nil {
			return err
		}

		w.WriteU64(uint64(i))

	case schema.I128:
		n, err := jsonval.BigInt(v)
		if err != nil {
			return err
		}

		if n.Cmp(minI128) < 0 || n.Cmp(maxI128) > 0 {
			return fmt.Errorf("%w: String", jsonval.ErrExpectationMismatch)
		}

		w.WriteI128(n)

	case schema.F32:
		f, err := jsonval.Float64(v)
		if err != nil {
			return err
		}

		w.WriteF32(float32(f))

	case schema.F64:
		f, err := jsonval.Float64(v)
		if err != nil {
			return err
		}

		w.WriteF64(f)

	case schema.String:
		s, err := jsonval.String(v)
		if err != nil {
			return err
		}

		w.WriteString(s)

	case schema.Bool:
		b, err := jsonval.Bool(v)
		if err != nil {
			return err
		}

		w.WriteBool(b)

	default:
		return fmt.Errorf("interp: unreachable primitive %s", decl)
	}

	return nil
}
