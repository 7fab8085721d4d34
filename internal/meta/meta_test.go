// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: nil, want: ""},
		{args: []string{"ec2snap"}, want: ""},
		{args: []string{"ec2snap", "--help"}, want: ""},
		{args: []string{"ec2snap", "prune", "-k", "2"}, want: "prune"},
		{args: []string{"ec2snap", ""}, want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Meta{Args: tt.args}.Command(), "%v", tt.args)
	}
}
