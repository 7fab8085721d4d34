// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for ec2snap's optional
// user configuration file, and the immutable Settings every run is built from.
// The configuration file is a YAML document located in the user's
// configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/ec2snap.yaml or $HOME/.config/ec2snap.yaml
//   - Windows: %APPDATA%/ec2snap.yaml
//
// EC2SNAP_CFG_FILE overrides the location.
package config
