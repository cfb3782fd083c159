// ABOUTME: AI commands for summaries, tags, translation, and grammar checks.
// ABOUTME: Surfaces cooldown state instead of hammering the inference API.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/ai"
	"github.com/quillnotes/quill/internal/models"
	"github.com/quillnotes/quill/internal/notes"
	"github.com/quillnotes/quill/internal/ui"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI-assisted note tools",
	Long:  `Summarize, tag, translate, and grammar-check notes using the configured inference API.`,
}

var aiSummarizeCmd = &cobra.Command{
	Use:   "summarize <id-prefix>",
	Short: "Summarize a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := loadUnlockedNote(cmd, args[0])
		if err != nil {
			return err
		}

		summary, err := gateway.Summarize(cmd.Context(), note.Content)
		if err != nil {
			return aiErr(ai.CategoryTools, err)
		}
		if summary == "" {
			fmt.Println("Nothing to summarize.")
			return nil
		}

		if _, err := svc.Update(cmd.Context(), note.ID, notes.UpdateParams{AISummary: &summary}); err != nil {
			return fmt.Errorf("failed to save summary: %w", err)
		}

		fmt.Println(summary)
		return nil
	},
}

var aiTagsCmd = &cobra.Command{
	Use:   "tags <id-prefix>",
	Short: "Suggest and apply tags for a note",
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := loadUnlockedNote(cmd, args[0])
		if err != nil {
			return err
		}

		tags, err := gateway.GenerateTags(cmd.Context(), note.Content)
		if err != nil {
			return aiErr(ai.CategoryTools, err)
		}
		if len(tags) == 0 {
			fmt.Println("No tags suggested.")
			return nil
		}

		if _, err := svc.Update(cmd.Context(), note.ID, notes.UpdateParams{Tags: tags}); err != nil {
			return fmt.Errorf("failed to save tags: %w", err)
		}

		for _, tag := range tags {
			fmt.Printf("#%s ", tag)
		}
		fmt.Println()
		return nil
	},
	Args: cobra.ExactArgs(1),
}

var aiTranslateCmd = &cobra.Command{
	Use:   "translate <id-prefix> <language>",
	Short: "Translate a note",
	Long:  `Translate a note's content to the given language. The translation is printed, not saved.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := loadUnlockedNote(cmd, args[0])
		if err != nil {
			return err
		}

		translated, err := gateway.Translate(cmd.Context(), note.Content, args[1])
		if err != nil {
			return aiErr(ai.CategoryTranslate, err)
		}

		fmt.Println(translated)
		return nil
	},
}

var aiGrammarCmd = &cobra.Command{
	Use:   "grammar <id-prefix>",
	Short: "Check a note's grammar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := loadUnlockedNote(cmd, args[0])
		if err != nil {
			return err
		}

		suggestions, err := gateway.CheckGrammar(cmd.Context(), note.Content)
		if err != nil {
			return aiErr(ai.CategoryTools, err)
		}
		if len(suggestions) == 0 {
			fmt.Println(ui.Success("No issues found."))
			return nil
		}

		for _, s := range suggestions {
			fmt.Printf("%q -> %q\n", s.Text, s.Suggestion)
		}
		return nil
	},
}

var aiInsightsCmd = &cobra.Command{
	Use:   "insights <id-prefix>",
	Short: "Extract actionable insights from a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := loadUnlockedNote(cmd, args[0])
		if err != nil {
			return err
		}

		insights, err := gateway.Insights(cmd.Context(), note.Content)
		if err != nil {
			return aiErr(ai.CategoryTools, err)
		}
		if len(insights) == 0 {
			fmt.Println("No insights extracted.")
			return nil
		}

		for _, point := range insights {
			fmt.Printf("- %s\n", point)
		}
		return nil
	},
}

var aiGlossaryCmd = &cobra.Command{
	Use:   "glossary <id-prefix>",
	Short: "Extract glossary terms from a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := loadUnlockedNote(cmd, args[0])
		if err != nil {
			return err
		}

		terms := gateway.ExtractGlossary(note.Content)
		if len(terms) == 0 {
			fmt.Println("No glossary terms found.")
			return nil
		}

		for _, t := range terms {
			fmt.Printf("%s: %s\n", t.Term, t.Definition)
		}
		return nil
	},
}

var aiConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the inference API",
	RunE: func(cmd *cobra.Command, args []string) error {
		keyFlag, _ := cmd.Flags().GetString("api-key")
		modelFlag, _ := cmd.Flags().GetString("model")
		urlFlag, _ := cmd.Flags().GetString("base-url")

		if keyFlag == "" && modelFlag == "" && urlFlag == "" {
			fmt.Printf("Config file: %s\n", ai.ConfigPath())
			return nil
		}

		fc, err := ai.LoadFileConfig()
		if err != nil {
			return fmt.Errorf("failed to read AI config: %w", err)
		}
		if keyFlag != "" {
			fc.APIKey = keyFlag
		}
		if modelFlag != "" {
			fc.Model = modelFlag
		}
		if urlFlag != "" {
			fc.BaseURL = urlFlag
		}
		if err := ai.SaveConfig(fc); err != nil {
			return fmt.Errorf("failed to save AI config: %w", err)
		}
		fmt.Println(ui.Success("Saved AI config."))
		return nil
	},
}

func loadUnlockedNote(cmd *cobra.Command, ref string) (*models.Note, error) {
	id, err := resolveNoteID(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	note, err := svc.Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note.Encrypted {
		return nil, fmt.Errorf("note is locked; run 'quill unlock %s' first", ref)
	}
	return note, nil
}

func aiErr(cat ai.Category, err error) error {
	if errors.Is(err, ai.ErrCooldown) {
		return fmt.Errorf("AI is cooling down, try again in %s", gateway.CooldownRemaining(cat).Round(time.Second))
	}
	return err
}

func init() {
	aiConfigCmd.Flags().String("api-key", "", "inference API key")
	aiConfigCmd.Flags().String("model", "", "model name")
	aiConfigCmd.Flags().String("base-url", "", "inference API base URL")

	aiCmd.AddCommand(aiSummarizeCmd, aiTagsCmd, aiTranslateCmd, aiGrammarCmd, aiInsightsCmd, aiGlossaryCmd, aiConfigCmd)
	rootCmd.AddCommand(aiCmd)
}
