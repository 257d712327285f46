package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfstore/lojinha/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Nome;Setor;Empresa\nJoão;Operações;FA\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "João;Operações\n" (ã = 0xE3, ç = 0xE7, õ = 0xF5).
	latin1Bytes := []byte{
		'J', 'o', 0xE3, 'o', ';',
		'O', 'p', 'e', 'r', 'a', 0xE7, 0xF5, 'e', 's', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "João;Operações\n", string(got))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Nome;Setor\n")

	r, err := encoding.NewUTF8Reader(bytes.NewReader(append(bom, content...)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Nome;Setor\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "FA" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'F', 0x00, 'A', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "FA", string(got))
}
