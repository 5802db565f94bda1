package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apastel/secret-santa-generator/internal/assignment"
	"github.com/apastel/secret-santa-generator/internal/participant"
)

// PairDTO is the JSON shape of a single pairing.
type PairDTO struct {
	Giver    string `json:"giver"`
	Receiver string `json:"receiver"`
}

// ResultDTO is the JSON shape of a full solve result.
type ResultDTO struct {
	RunID    string    `json:"run_id"`
	Attempts int       `json:"attempts"`
	Pairs    []PairDTO `json:"pairs"`
}

// JSON renders the pairings as indented JSON for scripting.
type JSON struct {
	w io.Writer
}

// NewJSON creates a JSON exporter writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

// Export implements Exporter.
func (j *JSON) Export(a *assignment.Assignment, _ *participant.Registry) error {
	pairs := make([]PairDTO, 0, a.Len())
	for _, pair := range a.Pairs() {
		pairs = append(pairs, PairDTO{Giver: pair.Giver, Receiver: pair.Receiver})
	}

	encoder := json.NewEncoder(j.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ResultDTO{
		RunID:    a.RunID().String(),
		Attempts: a.Attempts(),
		Pairs:    pairs,
	}); err != nil {
		return fmt.Errorf("encoding pairings as JSON: %w", err)
	}
	return nil
}
