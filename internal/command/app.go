// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/ec2snap/internal/config"
	"github.com/tfctl/ec2snap/internal/meta"
	"github.com/tfctl/ec2snap/internal/version"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	m := meta.Meta{
		Args:    args,
		Context: ctx,
	}

	// The arg[1] immediately following the binary (arg[0]) is the ec2snap
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. A missing config file is not an error.
	cfg, err := config.Load(m.Command())
	if err != nil && !errors.Is(err, config.ErrNoConfigFile) {
		return nil, err
	}
	m.Config = cfg

	app := &cli.Command{
		Name:                  version.Name,
		Usage:                 "EC2 on-demand snapshots with Rubrik Polaris",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "ec2snap version info",
				HideDefault: true,
			},
		},
		HideVersion: true,
	}

	app.Commands = append(app.Commands,
		snapCommandBuilder(m),
		pruneCommandBuilder(m),
		listCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
