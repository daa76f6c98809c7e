package sheet_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/marqueehq/marquee/internal/contract"
	"github.com/marqueehq/marquee/internal/importer/sheet"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Registo(t *testing.T) {
	csv := `Registo de contratos - exportado 31-01-2020
Empresa;Marquee Eventos Lda

Data;Evento;Cliente;Descrição;Valor
15-06-2019;Gala de Verão;Ana Costa;Animação musical;1.250,00
20-06-2019;Feira do Livro;Câmara Municipal;Montagem de palco;-588,74

Total;;;;661,26
`

	p := sheet.NewParser()
	entries, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, date(2019, 6, 15), entries[0].Date)
	assert.Equal(t, "Gala de Verão", entries[0].EventName)
	assert.Equal(t, "Ana Costa", entries[0].CounterpartyName)
	assert.Equal(t, "Animação musical", entries[0].Description)
	assert.Equal(t, int64(125000), entries[0].Amount)
	assert.Equal(t, contract.DirectionReceivable, entries[0].Direction)

	assert.Equal(t, date(2019, 6, 20), entries[1].Date)
	assert.Equal(t, int64(58874), entries[1].Amount)
	assert.Equal(t, contract.DirectionPayable, entries[1].Direction)
}

func TestParser_Faturacao(t *testing.T) {
	csv := `Mapa de faturação 2019

Data;Evento;Entidade;Descrição;A pagar;A receber
01/07/2019;Casamento Silva;Quinta do Rio;Aluguer de espaço;2.400,00;
01/07/2019;Casamento Silva;Silva & Silva;Organização;;5.900,00
`

	p := sheet.NewParser()
	entries, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Quinta do Rio", entries[0].CounterpartyName)
	assert.Equal(t, int64(240000), entries[0].Amount)
	assert.Equal(t, contract.DirectionPayable, entries[0].Direction)

	assert.Equal(t, int64(590000), entries[1].Amount)
	assert.Equal(t, contract.DirectionReceivable, entries[1].Direction)
}

func TestParser_Latin1Export(t *testing.T) {
	// Older exports come out of Excel in Windows-1252.
	utf8CSV := `Data;Evento;Cliente;Descrição;Valor
15-06-2019;Gala de Verão;Ana Costa;Atuação;100,00
`

	encoder := charmap.Windows1252.NewEncoder()
	latin1, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := sheet.NewParser()
	entries, err := p.Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "Gala de Verão", entries[0].EventName)
	assert.Equal(t, "Atuação", entries[0].Description)
}

func TestParser_SkipsFooterAndBlankRows(t *testing.T) {
	csv := `Data;Evento;Cliente;Descrição;Valor
15-06-2019;Gala;Ana;;100,00

;;;;
Total;;;;100,00
`

	p := sheet.NewParser()
	entries, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestParser_UnknownFormat(t *testing.T) {
	csv := `Foo;Bar
1;2
`

	p := sheet.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
}

func TestParser_MissingEventNameFails(t *testing.T) {
	csv := `Data;Evento;Cliente;Descrição;Valor
15-06-2019;;Ana;Atuação;100,00
`

	p := sheet.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
}
