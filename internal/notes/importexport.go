// ABOUTME: Import merge and export of the note collection.
// ABOUTME: Conflicts resolve last-writer-wins by updatedAt; ties keep the stored record.

package notes

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/quillnotes/quill/internal/db"
	"github.com/quillnotes/quill/internal/models"
	"go.uber.org/zap"
)

var ErrInvalidFormat = errors.New("invalid import format")

// ExportData is the interchange document: the current note collection plus
// provenance. Import also accepts a bare top-level array of notes.
type ExportData struct {
	ExportedAt time.Time     `json:"exportedAt"`
	Version    string        `json:"version"`
	Notes      []models.Note `json:"notes"`
}

// ImportResult counts how the candidates were handled.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ParseImport decodes an import payload, accepting either an object with a
// notes array or a top-level array of note records.
func ParseImport(data []byte) ([]models.Note, error) {
	var doc ExportData
	if err := json.Unmarshal(data, &doc); err == nil && doc.Notes != nil {
		return doc.Notes, nil
	}

	var arr []models.Note
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, ErrInvalidFormat
	}
	return arr, nil
}

// ImportMerge folds candidate notes into the store. Records without an id
// are skipped; an existing note is overwritten only when the candidate's
// updatedAt is strictly newer. Each candidate applies fully or not at all.
func (s *Service) ImportMerge(ctx context.Context, candidates []models.Note) (ImportResult, error) {
	var res ImportResult

	for i := range candidates {
		candidate := candidates[i]
		if candidate.ID == uuid.Nil {
			res.Skipped++
			continue
		}
		normalize(&candidate)

		applied, err := s.mergeOne(&candidate)
		if err != nil {
			return res, err
		}
		if applied {
			res.Imported++
		} else {
			res.Skipped++
		}
	}

	s.log.Info("import merge finished",
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func (s *Service) mergeOne(candidate *models.Note) (bool, error) {
	unlock := s.locks.lock(candidate.ID)
	defer unlock()

	existing, err := s.load(candidate.ID)
	switch {
	case errors.Is(err, ErrNotFound):
		// new record
	case err != nil:
		return false, err
	case !candidate.UpdatedAt.After(existing.UpdatedAt):
		return false, nil
	}

	if err := db.SaveNote(s.db, candidate); err != nil {
		return false, err
	}
	return true, nil
}

// ExportAll returns the literal current collection as an export document.
func (s *Service) ExportAll(ctx context.Context) (*ExportData, error) {
	all, err := db.ListNotes(s.db)
	if err != nil {
		return nil, err
	}

	out := ExportData{
		ExportedAt: time.Now(),
		Version:    "1.0",
		Notes:      make([]models.Note, 0, len(all)),
	}
	for _, n := range all {
		out.Notes = append(out.Notes, *n)
	}
	return &out, nil
}

// normalize backfills fields optional in the wire format so the invariants
// hold once the record is stored.
func normalize(n *models.Note) {
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.Versions == nil {
		n.Versions = []models.Version{}
	}
	if n.Version < 1 {
		n.Version = len(n.Versions) + 1
	}
}
