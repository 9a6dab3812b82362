// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/root.go
// Summary: Root command: preflight the terminal, load config, set up file
//          logging and run the UI.

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/vibeterm/config"
	"github.com/framegrace/vibeterm/internal/app"
	"github.com/framegrace/vibeterm/render"
	"github.com/framegrace/vibeterm/session"
)

var (
	startDir    string
	sessionName string
	noSave      bool

	version = "dev"
)

// SetVersion sets the version shown by --version, injected via ldflags.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "vibeterm",
	Short: "Terminal workspace with tiling panes and drag-and-drop layout",
	Long: `VibeTerm is a terminal workspace: split panes into a binary layout
tree, rearrange them by dragging, and keep a project sidebar that follows
the focused shell's directory.`,
	RunE:          runUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&startDir, "dir", "d", "", "Working directory for the first pane (default: cwd)")
	rootCmd.Flags().StringVarP(&sessionName, "session", "s", "", "Session to restore and save under")
	rootCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not persist the layout on exit")
}

// Execute runs the CLI.
func Execute() error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func runUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("vibeterm needs an interactive terminal")
	}
	if err := config.Err(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := setupLogging(); err != nil {
		return err
	}

	dir := startDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}

	var store *session.Store
	if !noSave {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	driver := render.NewTcellScreenDriver(screen)

	ui, err := app.New(app.Options{
		Driver:      driver,
		Dir:         dir,
		Store:       store,
		SessionName: sessionName,
	})
	if err != nil {
		return err
	}

	log.Printf("vibeterm %s starting in %s", version, dir)
	return ui.Run()
}

func setupLogging() error {
	stateDir, err := config.StateDir()
	if err != nil {
		return fmt.Errorf("resolve state dir: %w", err)
	}
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(stateDir, "vibeterm.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}

func openStore(ctx context.Context) (*session.Store, error) {
	stateDir, err := config.StateDir()
	if err != nil {
		return nil, fmt.Errorf("resolve state dir: %w", err)
	}
	store, err := session.Open(ctx, filepath.Join(stateDir, "sessions.db"))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}
