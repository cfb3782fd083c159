// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders markdown content with glamour.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a note",
	Long:  `Display a note's full content with rendered markdown.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveNoteID(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		note, err := svc.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		fmt.Print(ui.FormatNoteHeader(note))

		if note.Encrypted {
			fmt.Println(ui.Warning(fmt.Sprintf("This note is locked. Run 'quill unlock %s' to read it.", args[0])))
			return nil
		}

		content, _ := ui.FormatNoteContent(note.Content)
		fmt.Print(content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
