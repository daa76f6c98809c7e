package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/marqueehq/marquee/internal/encoding"
)

func decodeAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Evento;Valor\nAtuação;1.250,00\nDecoração;-300,00\n"
	assert.Equal(t, input, decodeAll(t, []byte(input)))
}

func TestNewUTF8Reader_Windows1252Export(t *testing.T) {
	// The oldest registo sheets carry bare Windows-1252 accents.
	raw, err := charmap.Windows1252.NewEncoder().String("Atuação;Valor\nDecoração;150,00\n")
	require.NoError(t, err)

	assert.Equal(t, "Atuação;Valor\nDecoração;150,00\n", decodeAll(t, []byte(raw)))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Evento;Valor\n")...)
	assert.Equal(t, "Evento;Valor\n", decodeAll(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// Excel "Unicode Text" exports are UTF-16 LE with a BOM.
	raw, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).
		NewEncoder().String("Evento;Valor\nAtuação;1.250,00\n")
	require.NoError(t, err)

	assert.Equal(t, "Evento;Valor\nAtuação;1.250,00\n", decodeAll(t, []byte(raw)))
}
