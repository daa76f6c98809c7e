package importer

import (
	"io"

	"github.com/marqueehq/marquee/internal/importer/sheet"
)

// Format names a supported legacy export family.
type Format string

const (
	FormatSheet Format = "sheet"
)

type Importer interface {
	Parse(r io.Reader) ([]sheet.Entry, error)
}
