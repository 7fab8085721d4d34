// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command wires the ec2snap CLI: the snap, prune and list commands,
// their flags and the action that runs a snapper workflow and emits the report.
package command
