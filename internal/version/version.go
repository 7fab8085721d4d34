// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other ec2snap packages to avoid import cycles.

package version

import (
	"runtime"
	"runtime/debug"
)

// Name is the binary and product name.
const Name = "ec2snap"

var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// UserAgent identifies ec2snap on outbound API requests.
func UserAgent() string {
	return Name + "/" + Version + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
