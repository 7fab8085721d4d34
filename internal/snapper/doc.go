// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapper runs the ec2snap workflow: resolve the instance identity,
// authenticate, look up the Polaris handle, trigger an on-demand snapshot and
// expire the oldest on-demand snapshots beyond the retention count.
//
// Steps run strictly in order and the first failure aborts the run. Every
// failure is returned as a *StepError naming the step, so callers can tell
// the failure kinds apart with errors.As and errors.Is.
package snapper
