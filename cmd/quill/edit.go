// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Opens note content in $EDITOR and snapshots the previous version.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/notes"
	"github.com/quillnotes/quill/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long:  `Open a note in $EDITOR for editing. The previous content is kept in the note's version history.`,
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
		if note.Encrypted {
			return fmt.Errorf("note is locked; run 'quill unlock %s' first", args[0])
		}

		titleFlag, _ := cmd.Flags().GetString("title")

		newContent, err := openEditor(note.Content)
		if err != nil {
			return fmt.Errorf("failed to open editor: %w", err)
		}

		if newContent == note.Content && titleFlag == "" {
			fmt.Println("No changes made.")
			return nil
		}

		params := notes.UpdateParams{Content: &newContent}
		if titleFlag != "" {
			params.Title = &titleFlag
		}
		updated, err := svc.Update(cmd.Context(), id, params)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s (v%d)", updated.ID.String()[:6], updated.Version)))
		return nil
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	rootCmd.AddCommand(editCmd)
}
