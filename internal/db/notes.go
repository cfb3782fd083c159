// ABOUTME: Database operations for notes and their version history.
// ABOUTME: Provides keyed CRUD plus the updated-descending listing index.

package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/quillnotes/quill/internal/models"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrPrefixTooShort = errors.New("prefix must be at least 6 characters")
var ErrAmbiguousPrefix = errors.New("prefix matches multiple notes")

// SaveNote inserts or replaces a note and its version history. The note row
// and its versions are written in one transaction so a reader never observes
// a note whose version counter disagrees with its snapshots.
func SaveNote(db *sql.DB, note *models.Note) error {
	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO notes (id, title, content, created_at, updated_at, is_pinned, is_encrypted, encrypted_payload, tags, ai_summary, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			is_pinned = excluded.is_pinned,
			is_encrypted = excluded.is_encrypted,
			encrypted_payload = excluded.encrypted_payload,
			tags = excluded.tags,
			ai_summary = excluded.ai_summary,
			version = excluded.version`,
		note.ID.String(), note.Title, note.Content, note.CreatedAt, note.UpdatedAt,
		note.Pinned, note.Encrypted, nullable(note.EncryptedPayload), string(tags),
		nullable(note.AISummary), note.Version,
	)
	if err != nil {
		return fmt.Errorf("upsert note: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM versions WHERE note_id = ?`, note.ID.String()); err != nil {
		return fmt.Errorf("clear versions: %w", err)
	}
	for _, v := range note.Versions {
		_, err := tx.Exec(
			`INSERT INTO versions (id, note_id, content, created_at, version) VALUES (?, ?, ?, ?, ?)`,
			v.ID.String(), note.ID.String(), v.Content, v.CreatedAt, v.Version,
		)
		if err != nil {
			return fmt.Errorf("insert version %d: %w", v.Version, err)
		}
	}

	return tx.Commit()
}

// GetNote returns a note with its version history, oldest snapshot first.
func GetNote(db *sql.DB, id uuid.UUID) (*models.Note, error) {
	note, err := scanNote(db.QueryRow(
		`SELECT id, title, content, created_at, updated_at, is_pinned, is_encrypted, encrypted_payload, tags, ai_summary, version
		 FROM notes WHERE id = ?`,
		id.String(),
	))
	if err != nil {
		return nil, err
	}

	note.Versions, err = loadVersions(db, note.ID)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// GetNoteByPrefix resolves a note by an id prefix of at least 6 characters.
func GetNoteByPrefix(db *sql.DB, prefix string) (*models.Note, error) {
	if len(prefix) < 6 {
		return nil, ErrPrefixTooShort
	}

	rows, err := db.Query(`SELECT id FROM notes WHERE id LIKE ?`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			return nil, err
		}
		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid note ID in database: %w", parseErr)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, ErrNoteNotFound
	}
	if len(ids) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(ids))
	}
	return GetNote(db, ids[0])
}

// ListNotes returns all notes ordered by updated_at descending.
func ListNotes(db *sql.DB) ([]*models.Note, error) {
	rows, err := db.Query(
		`SELECT id, title, content, created_at, updated_at, is_pinned, is_encrypted, encrypted_payload, tags, ai_summary, version
		 FROM notes ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, note := range notes {
		note.Versions, err = loadVersions(db, note.ID)
		if err != nil {
			return nil, err
		}
	}
	return notes, nil
}

// DeleteNote removes a note and, via cascade, its versions. Deleting an
// absent id is not an error.
func DeleteNote(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM notes WHERE id = ?`, id.String())
	return err
}

func loadVersions(db *sql.DB, noteID uuid.UUID) ([]models.Version, error) {
	rows, err := db.Query(
		`SELECT id, content, created_at, version FROM versions WHERE note_id = ? ORDER BY version ASC`,
		noteID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	versions := []models.Version{}
	for rows.Next() {
		var v models.Version
		var idStr string
		if err := rows.Scan(&idStr, &v.Content, &v.CreatedAt, &v.Version); err != nil {
			return nil, err
		}
		v.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid version ID in database: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return versions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	note := &models.Note{}
	var idStr, tagsJSON string
	var payload, summary sql.NullString

	err := row.Scan(&idStr, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt,
		&note.Pinned, &note.Encrypted, &payload, &tagsJSON, &summary, &note.Version)
	if err == sql.ErrNoRows {
		return nil, ErrNoteNotFound
	}
	if err != nil {
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
	return note, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
