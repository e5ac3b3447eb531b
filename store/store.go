// Package store persists canonical records. Sinks are append-oriented;
// de-duplication is keyed on the listing URL.
package store

import (
	"github.com/algajon/autosallon/models"
)

// Sink receives finished records. Implementations are not safe for
// concurrent use unless documented otherwise.
type Sink interface {
	Write(rec *models.CanonicalRecord) error
	Close() error
}

// Multi fans one record out to several sinks, stopping at the first error.
type Multi []Sink

func (m Multi) Write(rec *models.CanonicalRecord) error {
	for _, s := range m {
		if err := s.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
