// ABOUTME: History command for inspecting a note's version snapshots.
// ABOUTME: Lists snapshots and can print a single version's content.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history <id-prefix>",
	Short: "Show a note's version history",
	Long:  `List the snapshots taken each time a note's content changed. Use --show to print a specific version.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetInt("show")

		id, err := resolveNoteID(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		note, err := svc.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		if showVersion > 0 {
			for _, v := range note.Versions {
				if v.Version == showVersion {
					content, _ := ui.FormatNoteContent(v.Content)
					fmt.Print(content)
					return nil
				}
			}
			return fmt.Errorf("version %d not found (note is at v%d)", showVersion, note.Version)
		}

		if len(note.Versions) == 0 {
			fmt.Printf("No earlier versions. Note is at v%d.\n", note.Version)
			return nil
		}

		for _, v := range note.Versions {
			fmt.Print(ui.FormatVersionListItem(v))
		}
		fmt.Printf("Current: v%d\n", note.Version)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("show", 0, "print the content of a specific version")
	rootCmd.AddCommand(historyCmd)
}
