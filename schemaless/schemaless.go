package schemaless

import (
	"fmt"

	"go.jacobcolvin.com/bxj/binary"
	"go.jacobcolvin.com/bxj/jsonval"
)

// Encode appends the schema-less Binary encoding of v to w. Numbers
// dispatch to f64 if written with a fractional part or exponent,
// otherwise to u64 if non-negative, otherwise to i64 — the corrected
// order from §4.5, not the always-f64 behavior of the tool this was
// distilled from.
func Encode(w *binary.Writer, v any) error {
	switch val := v.(type) {
	case nil:
		w.WriteU8(0)
		return nil

	case bool:
		w.WriteBool(val)
		return nil

	case jsonval.Number:
		return encodeNumber(w, val)

	case string:
		w.WriteString(val)
		return nil

	case []any:
		w.WriteSeqLen(uint32(len(val))) //nolint:gosec // sequence lengths are value-bounded, not attacker width.

		for _, e := range val {
			if err := Encode(w, e); err != nil {
				return err
			}
		}

		return nil

	case map[string]any:
		// Lossy and order-sensitive by design: no keys, no length
		// prefix, iteration order is Go's unspecified map order.
		for _, e := range val {
			if err := Encode(w, e); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("%w: unsupported JSON value %T", jsonval.ErrExpectationMismatch, v)
	}
}

func encodeNumber(w *binary.Writer, n jsonval.Number) error {
	if !jsonval.IsIntegral(n) {
		f, err := jsonval.Float64(n)
		if err != nil {
			return err
		}

		w.WriteF64(f)

		return nil
	}

	if u, err := jsonval.Uint64(n); err == nil {
		w.WriteU64(u)
		return nil
	}

	i, err := jsonval.Int64(n)
	if err != nil {
		return err
	}

	w.WriteU64(uint64(i))

	return nil
}
