package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/particlelife/internal/experiment"
)

type ExportData struct {
	Run     RunMetadata         `json:"run"`
	Samples []experiment.Sample `json:"samples"`
}

// ExportJSON writes a stored run with its samples as indented JSON.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Samples: samples})
}

// ExportCSV writes a stored run's samples with a header row.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return gocsv.Marshal(samples, w)
}
