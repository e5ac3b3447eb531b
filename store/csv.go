package store

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/algajon/autosallon/models"
)

// CSVSink appends records to one CSV stream, header first.
type CSVSink struct {
	w         *csv.Writer
	closer    io.Closer
	wroteHead bool
}

// NewCSVSink writes to w. The header row is emitted before the first record.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

// OpenCSVFile creates (or truncates) path and returns a sink over it.
func OpenCSVFile(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, models.NewHarvestError(models.ErrCodeStore, "create csv", err)
	}
	s := NewCSVSink(f)
	s.closer = f
	return s, nil
}

func (s *CSVSink) Write(rec *models.CanonicalRecord) error {
	if !s.wroteHead {
		if err := s.w.Write(models.Header()); err != nil {
			return models.NewHarvestError(models.ErrCodeStore, "write header", err)
		}
		s.wroteHead = true
	}
	if err := s.w.Write(rec.Row()); err != nil {
		return models.NewHarvestError(models.ErrCodeStore, "write row", err)
	}
	return nil
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return models.NewHarvestError(models.ErrCodeStore, "flush csv", err)
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
