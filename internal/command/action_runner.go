// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/ec2snap/internal/config"
	"github.com/tfctl/ec2snap/internal/log"
	"github.com/tfctl/ec2snap/internal/meta"
	"github.com/tfctl/ec2snap/internal/output"
	"github.com/tfctl/ec2snap/internal/snapper"
)

// Step is one workflow of a snapper.Runner, such as (*snapper.Runner).Run.
type Step func(*snapper.Runner, context.Context) (snapper.Report, error)

// newRunner wires a snapper.Runner to the metadata service and Polaris.
var newRunner = snapper.New

// promptPassword reads the password for --ask-password.
var promptPassword PasswordPrompter = TermPasswordPrompter

// ActionRunner encapsulates the common action pattern for all workflow
// subcommands: freeze settings, build the runner, run the step and emit the
// report.
type ActionRunner struct {
	CommandName string
	Step        Step
}

// Run executes the action with the provided context and command.
func (ar *ActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args)
	config.Config.Namespace = ar.CommandName

	// Step 2: Settings. Nothing touches the network before they validate.
	s, err := BuildSettings(cmd, promptPassword)
	if err != nil {
		return err
	}

	// Step 3: Runner.
	r, err := newRunner(ctx, s)
	if err != nil {
		return err
	}

	// Step 4: Workflow.
	report, err := ar.Step(r, ctx)
	if err != nil {
		if len(report.Deleted) > 0 {
			log.Warnf("deleted before failure: %v", report.Deleted)
		}
		return err
	}

	// Step 5: Emit.
	if err := output.SortSnapshots(report.Listed, cmd.String("sort")); err != nil {
		return err
	}
	return output.Spit(cmd.Root().Writer, report, output.Options{
		Format: cmd.String("output"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
		Local:  cmd.Bool("local"),
	})
}

// NewActionRunner creates an ActionRunner for the named command.
func NewActionRunner(commandName string, step Step) *ActionRunner {
	return &ActionRunner{
		CommandName: commandName,
		Step:        step,
	}
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
