package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/marqueehq/marquee/internal/contract"
	enc "github.com/marqueehq/marquee/internal/encoding"
)

// Entry is one parsed ledger row: a contract-to-be with the event and
// counterparty still identified by name only.
type Entry struct {
	Date             time.Time
	EventName        string
	CounterpartyName string
	Description      string
	Amount           int64 // cents, always positive
	Direction        contract.PaymentDirection
}

// Parser reads the company's legacy ledger spreadsheet exports and
// produces contract entries. It auto-detects which export format
// (registo, faturação) is being used by matching column headers
// against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Entry, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching ledger format found: expected columns for registo or faturação")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts entries from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file
// (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Entry, error) {
	dateIdx := cols[p.DateCol]
	eventIdx := cols[p.EventCol]

	partyIdx := -1
	if i, ok := cols[p.PartyCol]; ok {
		partyIdx = i
	}

	descIdx := -1
	if i, ok := cols[p.DescCol]; ok {
		descIdx = i
	}

	var entries []Entry

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		eventName := cellValue(row, eventIdx)
		if eventName == "" {
			return nil, fmt.Errorf("row %d: missing event name", rowNum)
		}

		amount, direction, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		entries = append(entries, Entry{
			Date:             date,
			EventName:        eventName,
			CounterpartyName: cellValue(row, partyIdx),
			Description:      cellValue(row, descIdx),
			Amount:           amount,
			Direction:        direction,
		})
	}

	return entries, nil
}

// parseDate tries to parse a date from the given cell index.
// Returns false for empty cells or unparseable values (footer rows, etc).
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"02-01-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount extracts the amount and payment direction from a row
// based on the profile's amount mode.
func parseAmount(p *Profile, cols colIndex, row []string) (int64, contract.PaymentDirection, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(row, cols[p.AmountCol])
	case amountSplit:
		return parseSplitAmount(row, cols[p.PayableCol], cols[p.ReceivedCol])
	}

	return 0, "", false
}

// parseSingleAmount handles a single signed amount column. Negative
// amounts are money the company owes.
func parseSingleAmount(row []string, idx int) (int64, contract.PaymentDirection, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, "", false
	}

	cents, err := parseEuropeanAmount(s)
	if err != nil {
		return 0, "", false
	}

	if cents == 0 {
		return 0, "", false
	}

	if cents < 0 {
		return -cents, contract.DirectionPayable, true
	}

	return cents, contract.DirectionReceivable, true
}

// parseSplitAmount handles separate payable/receivable columns.
func parseSplitAmount(row []string, payableIdx, receivedIdx int) (int64, contract.PaymentDirection, bool) {
	if s := cellValue(row, payableIdx); s != "" {
		cents, err := parseEuropeanAmount(s)
		if err == nil && cents != 0 {
			return abs(cents), contract.DirectionPayable, true
		}
	}

	if s := cellValue(row, receivedIdx); s != "" {
		cents, err := parseEuropeanAmount(s)
		if err == nil && cents != 0 {
			return abs(cents), contract.DirectionReceivable, true
		}
	}

	return 0, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
