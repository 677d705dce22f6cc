package schema

import (
	"fmt"

	"go.jacobcolvin.com/bxj/jsonval"
)

// ParseAuthored interprets v as a human-authored Schema document: a
// JSON object `{"declaration": <string>, "definitions": [{"name":
// <string>, "definition": <definition>}, ...]}`, where each
// <definition> is `{"kind": "array"|"sequence"|"tuple"|"enum"|
// "struct", ...}` shaped per its kind. This is how `compile` produces
// a Schema to serialize with [Encode] — spec.md never defines a
// human-authoring format, only the Binary wire form, so this is
// additive syntax rather than a redefinition of anything the decoder
// or encoder depend on.
func ParseAuthored(v any) (*Schema, error) {
	obj, err := jsonval.Object(v)
	if err != nil {
		return nil, err
	}

	declRaw, ok := obj["declaration"]
	if !ok {
		return nil, fmt.Errorf("%w: missing \"declaration\"", jsonval.ErrExpectationMismatch)
	}

	decl, err := jsonval.String(declRaw)
	if err != nil {
		return nil, err
	}

	defsRaw, ok := obj["definitions"]
	if !ok {
		return nil, fmt.Errorf("%w: missing \"definitions\"", jsonval.ErrExpectationMismatch)
	}

	rawDefs, err := jsonval.Array(defsRaw)
	if err != nil {
		return nil, err
	}

	defs := NewDefinitions()

	for _, raw := range rawDefs {
		entry, err := jsonval.Object(raw)
		if err != nil {
			return nil, err
		}

		nameRaw, ok := entry["name"]
		if !ok {
			return nil, fmt.Errorf("%w: definition entry missing \"name\"", jsonval.ErrExpectationMismatch)
		}

		name, err := jsonval.String(nameRaw)
		if err != nil {
			return nil, err
		}

		defRaw, ok := entry["definition"]
		if !ok {
			return nil, fmt.Errorf("%w: definition entry %q missing \"definition\"", jsonval.ErrExpectationMismatch, name)
		}

		def, err := parseDefinition(defRaw)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", name, err)
		}

		defs.Set(name, def)
	}

	s := &Schema{Root: decl, Definitions: defs}

	return s, s.Validate()
}

func parseDefinition(v any) (Definition, error) {
	obj, err := jsonval.Object(v)
	if err != nil {
		return Definition{}, err
	}

	kind, err := jsonval.String(obj["kind"])
	if err != nil {
		return Definition{}, err
	}

	switch kind {
	case "array":
		length, err := jsonval.Uint64(obj["length"])
		if err != nil {
			return Definition{}, err
		}

		elems, err := jsonval.String(obj["elements"])
		if err != nil {
			return Definition{}, err
		}

		return Definition{Kind: KindArray, Length: uint32(length), Elements: elems}, nil

	case "sequence":
		elems, err := jsonval.String(obj["elements"])
		if err != nil {
			return Definition{}, err
		}

		return Definition{Kind: KindSequence, Elements: elems}, nil

	case "tuple":
		rawElems, err := jsonval.Array(obj["elements"])
		if err != nil {
			return Definition{}, err
		}

		elems := make([]Declaration, len(rawElems))

		for i, e := range rawElems {
			elems[i], err = jsonval.String(e)
			if err != nil {
				return Definition{}, err
			}
		}

		return Definition{Kind: KindTuple, TupleElements: elems}, nil

	case "enum":
		rawVariants, err := jsonval.Array(obj["variants"])
		if err != nil {
			return Definition{}, err
		}

		variants := make([]Variant, len(rawVariants))

		for i, rv := range rawVariants {
			vo, err := jsonval.Object(rv)
			if err != nil {
				return Definition{}, err
			}

			name, err := jsonval.String(vo["name"])
			if err != nil {
				return Definition{}, err
			}

			payload, err := jsonval.String(vo["payload"])
			if err != nil {
				return Definition{}, err
			}

			variants[i] = Variant{Name: name, Payload: payload}
		}

		return Definition{Kind: KindEnum, Variants: variants}, nil

	case "struct":
		fieldsRaw, ok := obj["fields"]
		if !ok {
			return Definition{}, fmt.Errorf("%w: struct definition missing \"fields\"", jsonval.ErrExpectationMismatch)
		}

		fields, err := parseFields(fieldsRaw)
		if err != nil {
			return Definition{}, err
		}

		return Definition{Kind: KindStruct, Fields: fields}, nil

	default:
		return Definition{}, fmt.Errorf("%w: unknown definition kind %q", jsonval.ErrExpectationMismatch, kind)
	}
}

func parseFields(v any) (Fields, error) {
	obj, err := jsonval.Object(v)
	if err != nil {
		return Fields{}, err
	}

	kind, err := jsonval.String(obj["kind"])
	if err != nil {
		return Fields{}, err
	}

	switch kind {
	case "named":
		rawNamed, err := jsonval.Array(obj["named"])
		if err != nil {
			return Fields{}, err
		}

		named := make([]NamedField, len(rawNamed))

		for i, rn := range rawNamed {
			no, err := jsonval.Object(rn)
			if err != nil {
				return Fields{}, err
			}

			name, err := jsonval.String(no["name"])
			if err != nil {
				return Fields{}, err
			}

			decl, err := jsonval.String(no["decl"])
			if err != nil {
				return Fields{}, err
			}

			named[i] = NamedField{Name: name, Decl: decl}
		}

		return Fields{Kind: NamedFields, Named: named}, nil

	case "unnamed":
		rawUnnamed, err := jsonval.Array(obj["unnamed"])
		if err != nil {
			return Fields{}, err
		}

		unnamed := make([]Declaration, len(rawUnnamed))

		for i, ru := range rawUnnamed {
			unnamed[i], err = jsonval.String(ru)
			if err != nil {
				return Fields{}, err
			}
		}

		return Fields{Kind: UnnamedFields, Unnamed: unnamed}, nil

	case "empty":
		return Fields{Kind: EmptyFields}, nil

	default:
		return Fields{}, fmt.Errorf("%w: unknown fields kind %q", jsonval.ErrExpectationMismatch, kind)
	}
}
