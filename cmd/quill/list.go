// ABOUTME: List command for displaying notes.
// ABOUTME: Shows pinned notes first, then the rest by recency.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/models"
	"github.com/quillnotes/quill/internal/ui"
)

const defaultSearchLimit = 10

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List all notes ordered by most recently updated, with pinned notes shown
first. With --search, runs a ranked full-text search instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tagFlag, _ := cmd.Flags().GetString("tag")
		searchFlag, _ := cmd.Flags().GetString("search")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		// Search mode - ranked output, no pinned section
		if searchFlag != "" {
			return listSearch(cmd, searchFlag, limitFlag)
		}

		all, err := svc.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		if tagFlag != "" {
			var filtered []*models.Note
			for _, n := range all {
				if n.HasTag(tagFlag) {
					filtered = append(filtered, n)
				}
			}
			all = filtered
		}

		if len(all) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		var pinned, rest []*models.Note
		for _, n := range all {
			if n.Pinned {
				pinned = append(pinned, n)
			} else {
				rest = append(rest, n)
			}
		}

		shown := 0
		if len(pinned) > 0 {
			fmt.Println("Pinned:")
			for _, n := range pinned {
				if limitFlag > 0 && shown >= limitFlag {
					break
				}
				fmt.Print(ui.FormatNoteListItem(n))
				shown++
			}
			fmt.Println()
		}
		for _, n := range rest {
			if limitFlag > 0 && shown >= limitFlag {
				break
			}
			fmt.Print(ui.FormatNoteListItem(n))
			shown++
		}

		return nil
	},
}

func listSearch(cmd *cobra.Command, query string, limit int) error {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	results, err := svc.Search(cmd.Context(), query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No notes found.")
		return nil
	}

	for _, r := range results {
		fmt.Print(ui.FormatNoteListItem(r.Note))
	}
	return nil
}

func init() {
	listCmd.Flags().String("tag", "", "filter by tag")
	listCmd.Flags().StringP("search", "s", "", "full-text search query")
	listCmd.Flags().IntP("limit", "n", 0, "max notes to show (0 = all)")
	rootCmd.AddCommand(listCmd)
}
