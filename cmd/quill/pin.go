// ABOUTME: Pin command for toggling a note's pinned flag.
// ABOUTME: Pinned notes sort to the top of listings.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/ui"
)

var pinCmd = &cobra.Command{
	Use:   "pin <id-prefix>",
	Short: "Toggle a note's pin",
	Long:  `Pin a note so it appears first in listings, or unpin it if already pinned.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveNoteID(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		note, err := svc.TogglePin(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to toggle pin: %w", err)
		}

		if note.Pinned {
			fmt.Println(ui.Success(fmt.Sprintf("Pinned note %s", note.ID.String()[:6])))
		} else {
			fmt.Println(ui.Success(fmt.Sprintf("Unpinned note %s", note.ID.String()[:6])))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
}
