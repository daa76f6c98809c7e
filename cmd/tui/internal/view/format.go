package view

import (
	"context"
	"fmt"
	"time"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a contract or rollup value stored as euro
// cents, e.g. 125000 -> "1250.00".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatNet renders a net-revenue rollup with an explicit sign, so a
// loss-making event stands out in the table.
func FormatNet(cents int64) string {
	if cents > 0 {
		return "+" + FormatAmount(cents)
	}

	return FormatAmount(cents)
}

// FormatDate renders event and contract dates as YYYY-MM-DD. Migrated
// records can carry a zero date when the legacy document had none.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "n/a"
	}

	return t.Format(time.DateOnly)
}

// DbCtx returns a context with the standard timeout for database
// operations triggered from a view.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
