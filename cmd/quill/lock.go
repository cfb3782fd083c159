// ABOUTME: Lock command for encrypting a note with a password.
// ABOUTME: Prompts twice and refuses mismatched or empty passwords.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quillnotes/quill/internal/ui"
)

var lockCmd = &cobra.Command{
	Use:   "lock <id-prefix>",
	Short: "Encrypt a note",
	Long:  `Encrypt a note's content with a password. The content stays unreadable until unlocked with the same password.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveNoteID(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		note, err := svc.Encrypt(cmd.Context(), id, password)
		if err != nil {
			return fmt.Errorf("failed to lock note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Locked note %s", note.ID.String()[:6])))
		return nil
	},
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func init() {
	rootCmd.AddCommand(lockCmd)
}
