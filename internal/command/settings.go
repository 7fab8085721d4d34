// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/ec2snap/internal/config"
	"github.com/tfctl/ec2snap/internal/log"
)

// ErrNoTerminal is returned when --ask-password is given but stdin is not a
// terminal.
var ErrNoTerminal = errors.New("cannot prompt for password: stdin is not a terminal")

// PasswordPrompter reads a password without echoing it.
type PasswordPrompter func(w io.Writer) (string, error)

// TermPasswordPrompter prompts on w and reads the password from stdin.
func TermPasswordPrompter(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}

	fmt.Fprint(w, "Polaris password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// BuildSettings freezes the resolved flag values of cmd into config.Settings
// and validates them. A missing password is prompted for only when
// --ask-password is set.
func BuildSettings(cmd *cli.Command, prompt PasswordPrompter) (config.Settings, error) {
	s := config.Settings{
		Subdomain:        cmd.String("subdomain"),
		Username:         cmd.String("username"),
		Password:         cmd.String("password"),
		Keep:             cmd.Int("keep"),
		Timeout:          cmd.Duration("timeout"),
		MetadataEndpoint: cmd.String("metadata-endpoint"),
		InstanceID:       cmd.String("instance-id"),
		DryRun:           cmd.Bool("dry-run"),
		StrictTrigger:    !cmd.Bool("lenient"),
	}

	if s.Password == "" && cmd.Bool("ask-password") {
		if prompt == nil {
			prompt = TermPasswordPrompter
		}
		pw, err := prompt(cmd.Root().ErrWriter)
		if err != nil {
			return config.Settings{}, err
		}
		s.Password = pw
	}

	log.Debugf("settings: %s", s)

	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}

	return s, nil
}
