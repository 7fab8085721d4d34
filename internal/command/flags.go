// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/ec2snap/internal/config"
)

// NewGlobalFlags returns the output flags shared by every command.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of snapshot fields (id, date) to sort the listing by",
			Validator: func(value string) error {
				return FlagValidators(value, SortValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewAccountFlags returns the Polaris account and instance flags, each backed
// by an env var and, when cfgFile is set, by the ns-namespaced and global keys
// of the YAML config file.
func NewAccountFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		withConfigFile(ns, cfgFile, &cli.StringFlag{
			Name:    "subdomain",
			Usage:   "Polaris account subdomain, host name or URL",
			Sources: cli.EnvVars("POLARIS_SUBDOMAIN"),
		}),
		withConfigFile(ns, cfgFile, &cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "Polaris service account user",
			Sources: cli.EnvVars("POLARIS_USERNAME"),
		}),
		&cli.StringFlag{
			Name:    "password",
			Usage:   "Polaris service account password",
			Sources: cli.EnvVars("POLARIS_PASSWORD"),
		},
		&cli.BoolFlag{
			Name:  "ask-password",
			Usage: "prompt for the password when it is not otherwise set",
		},
		withConfigFile(ns, cfgFile, &cli.DurationFlag{
			Name:    "timeout",
			Usage:   "timeout of each HTTP request",
			Value:   config.DefaultTimeout,
			Sources: cli.EnvVars("EC2SNAP_TIMEOUT"),
			Validator: func(value time.Duration) error {
				return FlagValidators(value, TimeoutValidator)
			},
		}),
		&cli.StringFlag{
			Name:    "instance-id",
			Aliases: []string{"i"},
			Usage:   "EC2 instance id to use instead of asking the metadata service",
			Sources: cli.EnvVars("EC2SNAP_INSTANCE_ID"),
		},
		withConfigFile(ns, cfgFile, &cli.StringFlag{
			Name:    "metadata-endpoint",
			Usage:   "instance metadata service endpoint",
			Sources: cli.EnvVars("AWS_EC2_METADATA_SERVICE_ENDPOINT"),
		}),
	}
}

// NewRetentionFlags returns the flags that control retention.
func NewRetentionFlags(ns string, cfgFile string) []cli.Flag {
	return []cli.Flag{
		withConfigFile(ns, cfgFile, &cli.IntFlag{
			Name:    "keep",
			Aliases: []string{"k"},
			Usage:   "number of on-demand snapshots to retain",
			Value:   config.DefaultKeep,
			Sources: cli.EnvVars("POLARIS_SNAPCOUNT"),
			Validator: func(value int) error {
				return FlagValidators(value, KeepValidator)
			},
		}),
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "report what would be snapshotted and expired without changing anything",
		},
	}
}

// NewLenientFlag returns the flag that turns embedded snapshot request errors
// into warnings.
func NewLenientFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "lenient",
		Usage: "continue when the snapshot request reports per-instance errors",
	}
}

// sourced is any flag whose value can come from a source chain.
type sourced interface {
	cli.Flag
	*cli.StringFlag | *cli.IntFlag | *cli.DurationFlag
}

// withConfigFile adds namespaced and global config file sources to the given
// flag's Sources chain. Nothing is added when there is no config file.
func withConfigFile[F sourced](ns string, path string, flag F) F {
	if path == "" {
		return flag
	}

	name := flag.Names()[0]
	var chain *cli.ValueSourceChain
	switch f := any(flag).(type) {
	case *cli.StringFlag:
		chain = &f.Sources
	case *cli.IntFlag:
		chain = &f.Sources
	case *cli.DurationFlag:
		chain = &f.Sources
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))

	return flag
}
