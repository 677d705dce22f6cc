package command

import (
	"errors"
	"fmt"
	"io"

	"go.jacobcolvin.com/bxj/binary"
	"go.jacobcolvin.com/bxj/compress"
	"go.jacobcolvin.com/bxj/interp"
	"go.jacobcolvin.com/bxj/jsonval"
	"go.jacobcolvin.com/bxj/schema"
	"go.jacobcolvin.com/bxj/schemadoc"
	"go.jacobcolvin.com/bxj/schemaless"
)

// ErrIOFailure is wrapped when reading from an input source or
// writing to an output sink fails, distinct from the file/stdio
// selection the CLI shell performs before a command ever runs.
var ErrIOFailure = errors.New("io failure")

// ErrUnexpectedSchemaHeader is wrapped by [Unpack] when the embedded
// Schema is not Sequence{elements:u8}.
var ErrUnexpectedSchemaHeader = errors.New("unexpected schema header")

// bytesSchema is the canonical Schema pack/unpack embed: a Sequence of
// u8, under the declaration name "Bytes".
func bytesSchema() *schema.Schema {
	defs := schema.NewDefinitions()
	defs.Set("Bytes", schema.Definition{Kind: schema.KindSequence, Elements: schema.U8})

	return &schema.Schema{Root: "Bytes", Definitions: defs}
}

func readAll(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrIOFailure, err)
	}

	return b, nil
}

func writeAll(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: %s", ErrIOFailure, err)
	}

	return nil
}

// Pack reads input verbatim and writes, unless noSchema is set, the
// canonical Sequence{elements:u8} Schema followed by the Binary
// encoding of input as that Sequence (§4.7).
func Pack(r io.Reader, w io.Writer, noSchema bool) error {
	input, err := readAll(r)
	if err != nil {
		return err
	}

	out := binary.NewWriter()

	if !noSchema {
		out.WriteBytes(schema.Encode(bytesSchema()))
	}

	out.WriteSeqLen(uint32(len(input))) //nolint:gosec // pack operates on whatever fits in memory, not attacker-bounded width.
	out.WriteBytes(input)

	return writeAll(w, out.Bytes())
}

// Unpack is the inverse of Pack: if noSchema is unset, it parses and
// verifies the embedded Schema equals Sequence{elements:u8} before
// emitting the raw bytes; otherwise it reads a bare length-prefixed
// byte sequence (§4.7).
func Unpack(r io.Reader, w io.Writer, noSchema bool) error {
	input, err := readAll(r)
	if err != nil {
		return err
	}

	reader := binary.NewReader(input)

	if !noSchema {
		s, err := schema.Decode(reader)
		if err != nil {
			return err
		}

		def, err := s.Lookup(s.Root)
		if err != nil {
			return err
		}

		if def.Kind != schema.KindSequence || def.Elements != schema.U8 {
			return fmt.Errorf("%w: %s", ErrUnexpectedSchemaHeader, s.Root)
		}
	}

	n, err := reader.ReadSeqLen()
	if err != nil {
		return err
	}

	data, err := reader.ReadBytes(int(n))
	if err != nil {
		return err
	}

	return writeAll(w, data)
}

// Encode parses input as JSON and writes its Binary encoding. When
// schemaBytes is non-nil it is the canonical Binary encoding of the
// Schema to encode under (written to the output ahead of the data, as
// `encode`'s own output is a valid `decode` input); otherwise the
// schema-less best-effort encoder is used (§4.7).
func Encode(r io.Reader, w io.Writer, schemaBytes []byte) error {
	value, err := jsonval.Parse(r)
	if err != nil {
		return err
	}

	out := binary.NewWriter()

	if schemaBytes != nil {
		s, err := schema.Decode(binary.NewReader(schemaBytes))
		if err != nil {
			return err
		}

		out.WriteBytes(schema.Encode(s))

		if err := interp.Encode(out, value, s, s.Root); err != nil {
			return err
		}
	} else if err := schemaless.Encode(out, value); err != nil {
		return err
	}

	return writeAll(w, out.Bytes())
}

// Decode peels an embedded Schema from input, decodes the remainder
// under it, and writes JSON, pretty-printed if pretty is set (§4.7).
func Decode(r io.Reader, w io.Writer, pretty bool) error {
	input, err := readAll(r)
	if err != nil {
		return err
	}

	reader := binary.NewReader(input)

	s, err := schema.Decode(reader)
	if err != nil {
		return err
	}

	value, err := interp.Decode(reader, s, s.Root)
	if err != nil {
		return err
	}

	var out []byte
	if pretty {
		out, err = jsonval.MarshalIndent(value)
	} else {
		out, err = jsonval.Marshal(value)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", ErrIOFailure, err)
	}

	out = append(out, '\n')

	return writeAll(w, out)
}

// Extract peels an embedded Schema from input and re-emits it in
// canonical Binary form (§4.7).
func Extract(r io.Reader, w io.Writer) error {
	input, err := readAll(r)
	if err != nil {
		return err
	}

	s, err := schema.Decode(binary.NewReader(input))
	if err != nil {
		return err
	}

	return writeAll(w, schema.Encode(s))
}

// Strip peels and discards an embedded Schema, writing only the
// remaining bytes (§4.7).
func Strip(r io.Reader, w io.Writer) error {
	input, err := readAll(r)
	if err != nil {
		return err
	}

	reader := binary.NewReader(input)

	if _, err := schema.Decode(reader); err != nil {
		return err
	}

	return writeAll(w, reader.Remaining())
}

// Compile parses a human-authored JSON Schema document (see
// [schema.ParseAuthored]) and writes its canonical Binary encoding,
// optionally running it through [compress.Compress] first.
func Compile(r io.Reader, w io.Writer, compact bool) error {
	value, err := jsonval.Parse(r)
	if err != nil {
		return err
	}

	s, err := schema.ParseAuthored(value)
	if err != nil {
		return err
	}

	if compact {
		s = compress.Compress(s)
	}

	return writeAll(w, schema.Encode(s))
}

// Describe decodes the canonical Schema at the head of input (a bare
// Schema, or one embedded ahead of data; any bytes after it are
// ignored) and writes a Draft 2020-12 JSON Schema document for its
// root declaration, as rendered by [schemadoc.Describe].
func Describe(r io.Reader, w io.Writer, pretty bool) error {
	input, err := readAll(r)
	if err != nil {
		return err
	}

	s, err := schema.Decode(binary.NewReader(input))
	if err != nil {
		return err
	}

	doc := schemadoc.Describe(s, s.Root)
	doc.Schema = "https://json-schema.org/draft/2020-12/schema"

	var out []byte
	if pretty {
		out, err = jsonval.MarshalIndent(doc)
	} else {
		out, err = jsonval.Marshal(doc)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", ErrIOFailure, err)
	}

	out = append(out, '\n')

	return writeAll(w, out)
}
