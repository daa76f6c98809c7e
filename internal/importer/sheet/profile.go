package sheet

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Valor" with value "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate payable and receivable columns.
	amountSplit
)

// Profile describes the column layout of one legacy ledger export
// format. Adding a new format is just adding a new Profile to the
// profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	EventCol    string
	PartyCol    string
	DescCol     string
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	PayableCol  string // used when AmountMode == amountSplit
	ReceivedCol string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.EventCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.PayableCol, p.ReceivedCol)
	}

	return cols
}

// profiles is the ordered list of ledger export formats to try during
// auto-detection. More specific profiles should come first to avoid
// false matches.
var profiles = []Profile{
	{
		Name:        "faturação",
		DateCol:     "Data",
		EventCol:    "Evento",
		PartyCol:    "Entidade",
		DescCol:     "Descrição",
		AmountMode:  amountSplit,
		PayableCol:  "A pagar",
		ReceivedCol: "A receber",
	},
	{
		Name:       "registo",
		DateCol:    "Data",
		EventCol:   "Evento",
		PartyCol:   "Cliente",
		DescCol:    "Descrição",
		AmountMode: amountSingle,
		AmountCol:  "Valor",
	},
}
