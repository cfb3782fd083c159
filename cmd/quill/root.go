// ABOUTME: Root command wiring for the quill CLI.
// ABOUTME: Opens the database and builds the note service and AI gateway.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quillnotes/quill/internal/ai"
	"github.com/quillnotes/quill/internal/db"
	"github.com/quillnotes/quill/internal/notes"
)

var (
	dbConn  *sql.DB
	svc     *notes.Service
	gateway *ai.Gateway
	logger  *zap.Logger

	dbPathFlag  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A local-first note-taking tool with AI assistance",
	Long: `Quill keeps markdown notes in a local SQLite database with version
history, per-note encryption, and optional AI-powered summaries, tags,
translation, and grammar checking.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if verboseFlag {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
		} else {
			logger = zap.NewNop()
		}

		path := dbPathFlag
		if path == "" {
			path = db.DefaultPath()
		}
		dbConn, err = db.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		cfg, err := ai.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load AI config: %w", err)
		}
		gateway = ai.NewGateway(cfg, logger)
		svc = notes.NewService(dbConn, gateway, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if dbConn != nil {
			return dbConn.Close()
		}
		return nil
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "path to database file")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "enable debug logging")
}

// resolveNoteID accepts a full UUID or an id prefix of 6+ characters.
func resolveNoteID(ref string) (uuid.UUID, error) {
	return svc.Resolve(context.Background(), ref)
}
