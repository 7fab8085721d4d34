// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/tfctl/ec2snap/internal/meta"
	"github.com/tfctl/ec2snap/internal/snapper"
)

// pruneCommandBuilder constructs the cli.Command for "prune", which expires
// on-demand snapshots beyond --keep without taking a new one.
func pruneCommandBuilder(meta meta.Meta) *cli.Command {
	return (&SnapCommandBuilder{
		Name:      "prune",
		Usage:     "expire old on-demand snapshots without taking a new one",
		UsageText: "ec2snap prune [options]",
		Step:      (*snapper.Runner).Prune,
		Meta:      meta,
	}).Build()
}
