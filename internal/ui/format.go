// ABOUTME: Terminal UI formatting for quill output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/quillnotes/quill/internal/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func FormatNoteListItem(note *models.Note) string {
	var sb strings.Builder

	idPrefix := note.ID.String()[:6]
	title := bold(note.Title)
	if note.Pinned {
		title = yellow("★ ") + title
	}
	if note.Encrypted {
		title += faint(" [locked]")
	}
	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(idPrefix), title))

	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("         %s %s\n",
			faint("Tags:"),
			cyan(strings.Join(note.Tags, ", "))))
	}

	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Updated:"),
		faint(note.UpdatedAt.Format("2006-01-02 15:04"))))

	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Format("2006-01-02 15:04"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Format("2006-01-02 15:04"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Version:"), faint(fmt.Sprintf("%d", note.Version))))

	if note.AISummary != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Summary:"), note.AISummary))
	}
	if len(note.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(note.Tags, ", "))))
	}
	if note.Encrypted {
		sb.WriteString(yellow("This note is locked. Use 'quill unlock' to decrypt it.\n"))
	}

	sb.WriteString(Separator())
	return sb.String()
}

func FormatVersionListItem(v models.Version) string {
	preview := v.Content
	if len(preview) > 60 {
		preview = preview[:57] + "..."
	}
	preview = strings.ReplaceAll(preview, "\n", " ")

	return fmt.Sprintf("  %s  %s  %s\n",
		cyan(fmt.Sprintf("v%d", v.Version)),
		faint(v.CreatedAt.Format("2006-01-02 15:04")),
		preview)
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
