// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Merges by id, keeping whichever copy was updated most recently.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/notes"
	"github.com/quillnotes/quill/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long: `Import notes from a JSON export. Notes already in the database are only
overwritten when the imported copy is newer; others are added as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0]) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		candidates, err := notes.ParseImport(data)
		if err != nil {
			return fmt.Errorf("failed to parse import: %w", err)
		}

		result, err := svc.ImportMerge(cmd.Context(), candidates)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d notes (%d skipped)", result.Imported, result.Skipped)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
