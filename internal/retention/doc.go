// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package retention decides which on-demand snapshots to expire so that at
// most N remain. The server's newest-first order is trusted as-is.
package retention
