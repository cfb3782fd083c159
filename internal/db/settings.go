// ABOUTME: Database operations for the AppSettings singleton.
// ABOUTME: Settings are replaced wholesale, never merged field-by-field.

package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/quillnotes/quill/internal/models"
)

var ErrSettingsNotFound = errors.New("settings not found")

// GetSettings returns the stored settings singleton.
func GetSettings(db *sql.DB) (models.AppSettings, error) {
	var s models.AppSettings
	err := db.QueryRow(
		`SELECT theme, font_size, font_family, ai_enabled, encryption_enabled FROM settings WHERE id = 1`,
	).Scan(&s.Theme, &s.FontSize, &s.FontFamily, &s.AIEnabled, &s.EncryptionEnabled)
	if err == sql.ErrNoRows {
		return s, ErrSettingsNotFound
	}
	if err != nil {
		return s, err
	}
	return s, nil
}

// ReplaceSettings clears and re-inserts the singleton row.
func ReplaceSettings(db *sql.DB, s models.AppSettings) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM settings`); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO settings (id, theme, font_size, font_family, ai_enabled, encryption_enabled)
		 VALUES (1, ?, ?, ?, ?, ?)`,
		s.Theme, s.FontSize, s.FontFamily, s.AIEnabled, s.EncryptionEnabled,
	)
	if err != nil {
		return fmt.Errorf("insert settings: %w", err)
	}
	return tx.Commit()
}
