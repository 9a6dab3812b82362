// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/sessions.go
// Summary: `vibeterm sessions` subcommands for inspecting and pruning
//          saved layouts.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List saved sessions",
	RunE:  runSessionsList,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	metas, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved sessions")
		return nil
	}
	for _, m := range metas {
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s updated %s\n",
			m.Name, m.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete %q: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
