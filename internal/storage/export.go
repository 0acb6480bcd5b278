package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/submoonsim/internal/dynamo"
)

type ExportData struct {
	Run       RunMetadata        `json:"run"`
	Samples   int                `json:"samples"`
	Ticks     []int              `json:"ticks"`
	Positions []dynamo.Positions `json:"positions"`
}

// ExportJSON writes a saved run, metadata and positions, as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	ticks, positions, err := s.LoadPositions(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{
		Run:       *meta,
		Samples:   len(ticks),
		Ticks:     ticks,
		Positions: positions,
	})
}

// ExportCSV writes the positions of a saved run as plain CSV.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	ticks, positions, err := s.LoadPositions(runID)
	if err != nil {
		return err
	}
	return WritePositionsCSV(w, ticks, positions)
}
