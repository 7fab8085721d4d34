// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/tfctl/ec2snap/internal/meta"
)

// SnapCommandBuilder constructs a cli.Command for the workflow subcommands
// (snap, prune, list) using a consistent pattern. The builder wires metadata,
// adds the account, retention and output flags and sets up the action runner.
type SnapCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Step      Step
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (scb *SnapCommandBuilder) Build() *cli.Command {
	flags := append(scb.Flags, NewAccountFlags(scb.Name, scb.Meta.Config.Source)...)
	flags = append(flags, NewRetentionFlags(scb.Name, scb.Meta.Config.Source)...)
	flags = append(flags, NewGlobalFlags()...)

	return &cli.Command{
		Name:      scb.Name,
		Usage:     scb.Usage,
		UsageText: scb.UsageText,
		Metadata: map[string]any{
			"meta": scb.Meta,
		},
		Flags:  flags,
		Action: NewActionRunner(scb.Name, scb.Step).Run,
	}
}
