package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1250.00", FormatAmount(125_000))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "-300.50", FormatAmount(-30_050))
	assert.Equal(t, "0.00", FormatAmount(0))
}

func TestFormatNet(t *testing.T) {
	assert.Equal(t, "+1500.00", FormatNet(150_000))
	assert.Equal(t, "-588.74", FormatNet(-58_874))
	assert.Equal(t, "0.00", FormatNet(0))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-06-10", FormatDate(time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "n/a", FormatDate(time.Time{}))
}
