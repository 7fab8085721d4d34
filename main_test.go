// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/ec2snap/internal/config"
)

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"ec2snap", "--help"}, handleNakedCommand([]string{"ec2snap"}))
	assert.Equal(t, []string{"ec2snap", "list"}, handleNakedCommand([]string{"ec2snap", "list"}))
}

func TestHandleVersion(t *testing.T) {
	assert.True(t, handleVersion([]string{"ec2snap", "--version"}))
	assert.True(t, handleVersion([]string{"ec2snap", "list", "-v"}))
	assert.False(t, handleVersion([]string{"ec2snap", "list"}))
}

func TestProcessSetOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
snap:
  nightly:
    - --keep 7
    - --dry-run
`), 0o600))
	t.Setenv("EC2SNAP_CFG_FILE", path)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no set",
			args:     []string{"ec2snap", "snap", "-o", "json"},
			expected: []string{"ec2snap", "snap", "-o", "json"},
		},
		{
			name:     "set expanded in place",
			args:     []string{"ec2snap", "snap", "-o", "json", "@nightly", "--titles"},
			expected: []string{"ec2snap", "snap", "-o", "json", "--keep", "7", "--dry-run", "--titles"},
		},
		{
			name:     "unknown set dropped",
			args:     []string{"ec2snap", "snap", "@weekly"},
			expected: []string{"ec2snap", "snap"},
		},
		{
			name:     "command position ignored",
			args:     []string{"ec2snap", "@nightly"},
			expected: []string{"ec2snap", "@nightly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processSetOnly(tt.args))
		})
	}
}

func TestInitAndRunApp_ExitCodes(t *testing.T) {
	for _, k := range []string{"POLARIS_SUBDOMAIN", "POLARIS_USERNAME", "POLARIS_PASSWORD", "POLARIS_SNAPCOUNT", "EC2SNAP_TIMEOUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("EC2SNAP_CFG_FILE", "")
	require.NoError(t, os.Unsetenv("EC2SNAP_CFG_FILE"))

	assert.Equal(t, 2, initAndRunApp([]string{"ec2snap", "snap", "--instance-id", "i-0abc"}))

	t.Setenv("EC2SNAP_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, initAndRunApp([]string{"ec2snap", "list"}))
}
