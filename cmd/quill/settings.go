// ABOUTME: Settings command for reading and updating app preferences.
// ABOUTME: Preferences live in a single-row table in the note database.

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/db"
	"github.com/quillnotes/quill/internal/models"
	"github.com/quillnotes/quill/internal/ui"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show app settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		fmt.Printf("theme:       %s\n", s.Theme)
		fmt.Printf("font-size:   %d\n", s.FontSize)
		fmt.Printf("font-family: %s\n", s.FontFamily)
		fmt.Printf("ai:          %t\n", s.AIEnabled)
		fmt.Printf("encryption:  %t\n", s.EncryptionEnabled)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a setting",
	Long:  `Update a setting. Keys: theme, font-size, font-family, ai, encryption.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		s, err := loadSettings()
		if err != nil {
			return err
		}

		switch key {
		case "theme":
			s.Theme = value
		case "font-size":
			size, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("font-size must be a number: %w", err)
			}
			s.FontSize = size
		case "font-family":
			s.FontFamily = value
		case "ai":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("ai must be true or false: %w", err)
			}
			s.AIEnabled = enabled
		case "encryption":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("encryption must be true or false: %w", err)
			}
			s.EncryptionEnabled = enabled
		default:
			return fmt.Errorf("unknown setting: %s", key)
		}

		if err := db.ReplaceSettings(dbConn, s); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Set %s to %s", key, value)))
		return nil
	},
}

func loadSettings() (models.AppSettings, error) {
	s, err := db.GetSettings(dbConn)
	if errors.Is(err, db.ErrSettingsNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
