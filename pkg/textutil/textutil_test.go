package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

func TestIsBinary_EmptyData(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary(nil))
	assert.False(t, IsBinary([]byte{}))
}

func TestIsBinary_PureText(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary([]byte("hello world\n")))
}

func TestIsBinary_NullByte(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBinary([]byte("hello\x00world")))
}

func TestIsBinary_NullBeyondSniffBoundary(t *testing.T) {
	t.Parallel()

	// Null byte beyond the sniff window should NOT be detected.
	data := make([]byte, BinarySniffLength+100)
	for i := range data {
		data[i] = 'a'
	}

	data[BinarySniffLength+50] = 0x00

	assert.False(t, IsBinary(data))
}

const sampleHeader = "タスク名\tプロジェクト名"

func TestDecode_UTF8(t *testing.T) {
	t.Parallel()

	out, enc, err := Decode([]byte(sampleHeader))
	require.NoError(t, err)

	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, sampleHeader, string(out))
}

func TestDecode_UTF8BOMStripped(t *testing.T) {
	t.Parallel()

	data := append([]byte{0xEF, 0xBB, 0xBF}, sampleHeader...)

	out, enc, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, EncodingUTF8BOM, enc)
	assert.Equal(t, sampleHeader, string(out))
}

func TestDecode_ShiftJIS(t *testing.T) {
	t.Parallel()

	sjis, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(sampleHeader))
	require.NoError(t, err)

	out, enc, err := Decode(sjis)
	require.NoError(t, err)

	assert.Equal(t, EncodingShiftJIS, enc)
	assert.Equal(t, sampleHeader, string(out))
}

func TestDecode_UTF16LE(t *testing.T) {
	t.Parallel()

	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	utf16, err := encoder.Bytes([]byte(sampleHeader))
	require.NoError(t, err)

	out, enc, err := Decode(utf16)
	require.NoError(t, err)

	assert.Equal(t, EncodingUTF16LE, enc)
	assert.Equal(t, sampleHeader, string(out))
}
