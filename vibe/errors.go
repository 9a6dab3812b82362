// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: vibe/errors.go
// Summary: Error taxonomy for layout tree and workspace operations.

package vibe

import "errors"

var (
	// ErrNotFound is returned when a referenced pane or split is not part of
	// the tree, usually because the caller held on to a stale identifier.
	ErrNotFound = errors.New("pane or split not found")

	// ErrLastPane is returned when an operation would remove the sole
	// remaining pane of a workspace. A tree always contains at least one pane.
	ErrLastPane = errors.New("cannot remove the last pane")
)
