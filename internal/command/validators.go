// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"time"

	"github.com/tfctl/ec2snap/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// SortValidator rejects sort specs naming unknown snapshot fields.
func SortValidator(value any) error {
	s, _ := value.(string)
	return output.SortSnapshots(nil, s)
}

func KeepValidator(value any) error {
	if n, ok := value.(int); !ok || n < 0 {
		return fmt.Errorf("must be zero or more, got %v", value)
	}
	return nil
}

func TimeoutValidator(value any) error {
	if d, ok := value.(time.Duration); !ok || d <= 0 {
		return fmt.Errorf("must be a positive duration, got %v", value)
	}
	return nil
}
