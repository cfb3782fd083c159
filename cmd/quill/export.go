// ABOUTME: Export command for backing up notes.
// ABOUTME: Supports JSON and markdown export formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quillnotes/quill/internal/models"
	"github.com/quillnotes/quill/internal/notes"
	"github.com/quillnotes/quill/internal/ui"
)

type markdownFrontmatter struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Tags      []string  `yaml:"tags"`
	Pinned    bool      `yaml:"pinned,omitempty"`
	Summary   string    `yaml:"summary,omitempty"`
	Version   int       `yaml:"version"`
	CreatedAt time.Time `yaml:"created"`
	UpdatedAt time.Time `yaml:"updated"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export notes to JSON (including version history) or to a directory of markdown files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		export, err := svc.ExportAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to export notes: %w", err)
		}

		switch format {
		case "json":
			return exportJSON(export, outputPath)
		case "md":
			return exportMarkdown(export.Notes, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func exportJSON(export *notes.ExportData, outputPath string) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(export.Notes), outputPath)))
	return nil
}

func exportMarkdown(all []models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for _, n := range all {
		fm := markdownFrontmatter{
			ID:        n.ID.String(),
			Title:     n.Title,
			Tags:      n.Tags,
			Pinned:    n.Pinned,
			Summary:   n.AISummary,
			Version:   n.Version,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		}

		var sb strings.Builder
		sb.WriteString("---\n")
		frontmatter, err := yaml.Marshal(fm)
		if err != nil {
			return err
		}
		sb.Write(frontmatter)
		sb.WriteString("---\n\n")
		if n.Encrypted {
			// Ciphertext would be useless in a markdown file; note the state instead.
			sb.WriteString("(locked note, content omitted)\n")
		} else {
			sb.WriteString(n.Content)
		}

		filename := sanitizeFilename(n.Title) + ".md"
		filePath := filepath.Join(outputDir, filename)
		if err := os.WriteFile(filePath, []byte(sb.String()), 0644); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(all), outputDir)))
	return nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	rootCmd.AddCommand(exportCmd)
}
