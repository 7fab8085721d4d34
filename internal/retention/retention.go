// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package retention

import (
	"github.com/tfctl/ec2snap/internal/polaris"
)

// Result splits a newest-first snapshot list into the records retained and the
// records to expire. Both keep the input order.
type Result struct {
	Keep   []polaris.Snapshot `json:"keep" yaml:"keep"`
	Expire []polaris.Snapshot `json:"expire" yaml:"expire"`
}

// Plan keeps the first keep snapshots of a newest-first list and expires the
// rest. A negative keep is treated as zero. The input is not modified.
func Plan(snapshots []polaris.Snapshot, keep int) Result {
	if keep < 0 {
		keep = 0
	}
	if len(snapshots) <= keep {
		return Result{Keep: clone(snapshots)}
	}
	return Result{
		Keep:   clone(snapshots[:keep]),
		Expire: clone(snapshots[keep:]),
	}
}

// clone copies s, returning nil when it is empty.
func clone(s []polaris.Snapshot) []polaris.Snapshot {
	if len(s) == 0 {
		return nil
	}
	return append([]polaris.Snapshot(nil), s...)
}
