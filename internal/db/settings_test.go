// ABOUTME: Tests for the settings singleton storage.
// ABOUTME: Verifies wholesale replacement and absent-settings behavior.

package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/quillnotes/quill/internal/models"
)

func TestSettingsAbsentByDefault(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	_, err = GetSettings(db)
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Errorf("expected ErrSettingsNotFound, got %v", err)
	}
}

func TestReplaceSettings(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	first := models.DefaultSettings()
	if err := ReplaceSettings(db, first); err != nil {
		t.Fatalf("failed to store settings: %v", err)
	}

	second := first
	second.Theme = "dark"
	second.FontSize = 18
	second.AIEnabled = false
	if err := ReplaceSettings(db, second); err != nil {
		t.Fatalf("failed to replace settings: %v", err)
	}

	got, err := GetSettings(db)
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if got != second {
		t.Errorf("expected %+v, got %+v", second, got)
	}

	// Only one row ever persists
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&count); err != nil {
		t.Fatalf("count settings: %v", err)
	}
	if count != 1 {
		t.Errorf("expected singleton row, found %d", count)
	}
}
