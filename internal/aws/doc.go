// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws contains the AWS SDK helpers ec2snap needs: config loading and
// resolution of the running instance's identity from the instance metadata
// service.
package aws
