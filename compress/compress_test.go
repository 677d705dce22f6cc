package compress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bxj/binary"
	"go.jacobcolvin.com/bxj/compress"
	"go.jacobcolvin.com/bxj/interp"
	"go.jacobcolvin.com/bxj/jsonval"
	"go.jacobcolvin.com/bxj/schema"
)

func recursiveListSchema() *schema.Schema {
	defs := schema.NewDefinitions()
	defs.Set("Unit", schema.Definition{Kind: schema.KindStruct, Fields: schema.Fields{Kind: schema.EmptyFields}})
	defs.Set("IntList", schema.Definition{
		Kind: schema.KindEnum,
		Variants: []schema.Variant{
			{Name: "Nil", Payload: "Unit"},
			{Name: "Cons", Payload: "Node"},
		},
	})
	defs.Set("Node", schema.Definition{
		Kind: schema.KindStruct,
		Fields: schema.Fields{
			Kind: schema.NamedFields,
			Named: []schema.NamedField{
				{Name: "value", Decl: schema.U32},
				{Name: "rest", Decl: "IntList"},
			},
		},
	})

	return &schema.Schema{Root: "IntList", Definitions: defs}
}

func TestCompressRenamesNonPrimitiveDeclarations(t *testing.T) {
	t.Parallel()

	s := recursiveListSchema()
	compressed := compress.Compress(s)

	assert.NotEqual(t, s.Root, compressed.Root)
	assert.Equal(t, s.Definitions.Len(), compressed.Definitions.Len())

	for _, name := range compressed.Definitions.Names() {
		assert.Len(t, []rune(name), 1)
	}
}

func TestCompressPreservesVariantAndFieldNames(t *testing.T) {
	t.Parallel()

	s := recursiveListSchema()
	compressed := compress.Compress(s)

	def, ok := compressed.Definitions.Get(compressed.Root)
	require.True(t, ok)
	require.Equal(t, schema.KindEnum, def.Kind)

	names := make([]string, len(def.Variants))
	for i, v := range def.Variants {
		names[i] = v.Name
	}

	assert.Equal(t, []string{"Nil", "Cons"}, names)
}

func TestCompressPreservesDecodeSemantics(t *testing.T) {
	t.Parallel()

	s := recursiveListSchema()
	compressed := compress.Compress(s)

	v, err := jsonval.ParseBytes([]byte(`{"Cons":{"value":1,"rest":{"Cons":{"value":2,"rest":{"Nil":{}}}}}}`))
	require.NoError(t, err)

	w := binary.NewWriter()
	require.NoError(t, interp.Encode(w, v, s, s.Root))

	decodedOriginal, err := interp.Decode(binary.NewReader(w.Bytes()), s, s.Root)
	require.NoError(t, err)

	decodedCompressed, err := interp.Decode(binary.NewReader(w.Bytes()), compressed, compressed.Root)
	require.NoError(t, err)

	assert.Equal(t, decodedOriginal, decodedCompressed)
}

func TestCompressOnlyIncludesReachableDeclarations(t *testing.T) {
	t.Parallel()

	defs := schema.NewDefinitions()
	defs.Set("Used", schema.Definition{Kind: schema.KindSequence, Elements: schema.U8})
	defs.Set("Unused", schema.Definition{Kind: schema.KindSequence, Elements: schema.U32})

	s := &schema.Schema{Root: "Used", Definitions: defs}

	compressed := compress.Compress(s)
	assert.Equal(t, 1, compressed.Definitions.Len())
}
