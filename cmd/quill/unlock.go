// ABOUTME: Unlock command for decrypting a locked note.
// ABOUTME: Restores the plaintext content on a correct password.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillnotes/quill/internal/crypto"
	"github.com/quillnotes/quill/internal/ui"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock <id-prefix>",
	Short: "Decrypt a note",
	Long:  `Decrypt a locked note with its password. The note stays unlocked until locked again.`,
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

		plaintext, err := svc.Decrypt(cmd.Context(), id, password)
		if err != nil {
			if errors.Is(err, crypto.ErrInvalidPassword) {
				return fmt.Errorf("invalid password")
			}
			return fmt.Errorf("failed to unlock note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Unlocked note %s", id.String()[:6])))
		content, _ := ui.FormatNoteContent(plaintext)
		fmt.Print(content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unlockCmd)
}
