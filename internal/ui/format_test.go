// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates note display, version lines, and markdown rendering.

package ui

import (
	"strings"
	"testing"

	"github.com/quillnotes/quill/internal/models"
)

func TestFormatNoteListItem(t *testing.T) {
	note := models.NewNote("Test Note", "content")
	note.Tags = []string{"important", "work"}

	output := FormatNoteListItem(note)

	if !strings.Contains(output, note.ID.String()[:6]) {
		t.Error("expected output to contain ID prefix")
	}
	if !strings.Contains(output, "Test Note") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "important") {
		t.Error("expected output to contain tag")
	}
}

func TestFormatNoteListItemLocked(t *testing.T) {
	note := models.NewNote("Secret", "")
	note.Encrypted = true

	output := FormatNoteListItem(note)

	if !strings.Contains(output, "[locked]") {
		t.Error("expected locked marker")
	}
}

func TestFormatNoteContent(t *testing.T) {
	content := "# Hello\n\nThis is **bold** text."

	output, err := FormatNoteContent(content)
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}

	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestFormatNoteHeader(t *testing.T) {
	note := models.NewNote("Header Note", "content")
	note.AISummary = "short summary"

	output := FormatNoteHeader(note)

	if !strings.Contains(output, "Header Note") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "short summary") {
		t.Error("expected output to contain summary")
	}
}

func TestFormatVersionListItem(t *testing.T) {
	note := models.NewNote("Title", strings.Repeat("long content ", 20))
	v := note.Snapshot()

	output := FormatVersionListItem(v)

	if !strings.Contains(output, "v1") {
		t.Error("expected version marker")
	}
	if strings.Contains(output, "\n ") && len(output) > 200 {
		t.Error("expected preview truncated to one line")
	}
}
