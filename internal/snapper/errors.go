// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapper

import (
	"fmt"
)

// Step names a stage of the workflow.
type Step string

const (
	StepIdentity     Step = "identity"
	StepAuthenticate Step = "authenticate"
	StepLookup       Step = "lookup"
	StepTrigger      Step = "trigger"
	StepList         Step = "list"
	StepExpire       Step = "expire"
)

// StepError reports the step that aborted a run. For StepExpire, Deleted and
// Pending record how far the deletion got; snapshots already deleted stay
// deleted.
type StepError struct {
	Step    Step
	Err     error
	Deleted int
	Pending int
}

func (e *StepError) Error() string {
	if e.Step == StepExpire {
		return fmt.Sprintf("%s failed after deleting %d of %d snapshots: %v",
			e.Step, e.Deleted, e.Deleted+e.Pending, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func fail(step Step, err error) error {
	return &StepError{Step: step, Err: err}
}
