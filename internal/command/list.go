// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/tfctl/ec2snap/internal/meta"
	"github.com/tfctl/ec2snap/internal/snapper"
)

func listCommandBuilder(meta meta.Meta) *cli.Command {
	return (&SnapCommandBuilder{
		Name:      "list",
		Usage:     "list on-demand snapshots and which of them would expire",
		UsageText: "ec2snap list [options]",
		Step:      (*snapper.Runner).List,
		Meta:      meta,
	}).Build()
}
