// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: main.go

package main

import (
	"fmt"
	"os"

	"github.com/framegrace/vibeterm/cmd"
)

var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vibeterm:", err)
		os.Exit(1)
	}
}
