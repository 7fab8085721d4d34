// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/ec2snap/internal/config"
)

// Meta contains runtime metadata shared by commands: the raw CLI arguments,
// the configuration file loaded for the invoked command and the root context.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}

// Command returns the subcommand named on the command line, or "" when the
// first argument is a flag or missing.
func (m Meta) Command() string {
	if len(m.Args) > 1 && len(m.Args[1]) > 0 && m.Args[1][0] != '-' {
		return m.Args[1]
	}
	return ""
}
