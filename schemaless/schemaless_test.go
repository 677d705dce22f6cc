package schemaless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bxj/binary"
	"go.jacobcolvin.com/bxj/jsonval"
	"go.jacobcolvin.com/bxj/schemaless"
)

func encode(t *testing.T, jsonText string) []byte {
	t.Helper()

	v, err := jsonval.ParseBytes([]byte(jsonText))
	require.NoError(t, err)

	w := binary.NewWriter()
	require.NoError(t, schemaless.Encode(w, v))

	return w.Bytes()
}

func TestEncodeNullMatchesSpecExample(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x00}, encode(t, `null`))
}

func TestEncodeBool(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x01}, encode(t, `true`))
	assert.Equal(t, []byte{0x00}, encode(t, `false`))
}

func TestEncodeIntegerDispatchesToU64(t *testing.T) {
	t.Parallel()

	got := encode(t, `24`)
	assert.Equal(t, []byte{0x18, 0, 0, 0, 0, 0, 0, 0}, got)
}

func TestEncodeNegativeIntegerDispatchesToI64(t *testing.T) {
	t.Parallel()

	got := encode(t, `-1`)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, got)
}

func TestEncodeFractionalDispatchesToF64(t *testing.T) {
	t.Parallel()

	got := encode(t, `1.5`)

	r := binary.NewReader(got)

	f, err := r.ReadF64()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 0)
}

func TestEncodeArrayWritesLengthPrefix(t *testing.T) {
	t.Parallel()

	got := encode(t, `[1,2,3]`)

	r := binary.NewReader(got)

	n, err := r.ReadSeqLen()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), n)

	for i := uint32(0); i < n; i++ {
		v, err := r.ReadU64()
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), v)
	}
}

func TestEncodeObjectOmitsKeysAndLength(t *testing.T) {
	t.Parallel()

	got := encode(t, `{"a":1}`)

	// No length prefix, no key — just the single value's own encoding.
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, got)
}
