// ABOUTME: FTS5 full-text search operations for notes.
// ABOUTME: Provides ranked search across title, content, and AI summary.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/quillnotes/quill/internal/models"
)

type SearchResult struct {
	*models.Note
	Rank float64
}

// SearchNotes runs an FTS5 match over title, content, and ai_summary, best
// matches first. Version history is not loaded for search hits.
func SearchNotes(db *sql.DB, query string, limit int) ([]*SearchResult, error) {
	rows, err := db.Query(
		`SELECT n.id, n.title, n.content, n.created_at, n.updated_at, n.is_pinned, n.is_encrypted, n.encrypted_payload, n.tags, n.ai_summary, n.version, rank
		 FROM notes_fts
		 JOIN notes n ON notes_fts.rowid = n.rowid
		 WHERE notes_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []*SearchResult
	for rows.Next() {
		result := &SearchResult{Note: &models.Note{}}
		note := result.Note
		var idStr, tagsJSON string
		var payload, summary sql.NullString

		if err := rows.Scan(&idStr, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt,
			&note.Pinned, &note.Encrypted, &payload, &tagsJSON, &summary, &note.Version, &result.Rank); err != nil {
			return nil, err
		}
		note.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid note ID in database: %w", err)
		}
		note.EncryptedPayload = payload.String
		note.AISummary = summary.String
		if err := json.Unmarshal([]byte(tagsJSON), &note.Tags); err != nil {
			return nil, fmt.Errorf("invalid tags in database: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
