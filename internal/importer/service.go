package importer

import (
	"fmt"
	"io"

	"github.com/marqueehq/marquee/internal/importer/sheet"
)

type Service struct {
	sheetImporter Importer
}

func NewService() *Service {
	return &Service{
		sheetImporter: sheet.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]sheet.Entry, error) {
	var importer Importer

	switch format {
	case FormatSheet:
		importer = s.sheetImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
