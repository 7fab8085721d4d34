// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/tfctl/ec2snap/internal/meta"
	"github.com/tfctl/ec2snap/internal/snapper"
)

// snapCommandBuilder constructs the cli.Command for "snap", the full workflow:
// take an on-demand snapshot of this instance, then expire the oldest ones.
func snapCommandBuilder(meta meta.Meta) *cli.Command {
	return (&SnapCommandBuilder{
		Name:      "snap",
		Usage:     "snapshot this instance and expire old on-demand snapshots",
		UsageText: "ec2snap snap [options]",
		Flags: []cli.Flag{
			NewLenientFlag(),
		},
		Step: (*snapper.Runner).Run,
		Meta: meta,
	}).Build()
}
