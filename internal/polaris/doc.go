// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package polaris is a minimal client for the Rubrik Polaris API. It covers
// session authentication and the four GraphQL operations ec2snap uses:
// AWSInstancesList, TakeAWSInstanceSnapshot, AWSInstanceSnapshotDetails and
// DeletePolarisSnapshot.
package polaris
