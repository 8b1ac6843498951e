// Package history persists a ledger of applied edit batches in a local
// SQLite database. It is a CLI collaborator: the engine never records
// history itself.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Run records one applied batch.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Dir       string    `json:"dir"`
	Edits     int       `json:"edits"`
	Applied   int       `json:"applied"`
	Errors    int       `json:"errors"`
	Summary   string    `json:"summary"`
}

// NewRun creates a run record with a fresh ID.
func NewRun(dir string, edits, applied, errors int, summary string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Dir:       dir,
		Edits:     edits,
		Applied:   applied,
		Errors:    errors,
		Summary:   summary,
	}
}
