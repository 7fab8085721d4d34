// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Defaults applied when neither a flag, env var nor config file sets a value.
const (
	DefaultKeep    = 1
	DefaultTimeout = 30 * time.Second
	DomainSuffix   = ".my.rubrik.com"
)

var (
	// ErrMissingSetting reports required settings that were not supplied.
	ErrMissingSetting = errors.New("missing required setting")
	// ErrInvalidSetting reports settings that were supplied but are unusable.
	ErrInvalidSetting = errors.New("invalid setting")
)

// Settings is the immutable configuration of a single run. It is built once
// by the command layer and passed by value to every component.
type Settings struct {
	Subdomain string
	Username  string
	Password  string

	// Keep is the number of on-demand snapshots retained per instance.
	Keep    int
	Timeout time.Duration

	// MetadataEndpoint overrides the instance metadata service address.
	MetadataEndpoint string
	// InstanceID, when set, skips the metadata lookup entirely.
	InstanceID string

	DryRun bool
	// StrictTrigger fails the run when the snapshot request reports embedded
	// per-instance errors.
	StrictTrigger bool
}

// Validate checks that every required value is present and every numeric value
// is in range. All missing settings are reported at once.
func (s Settings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.Subdomain) == "" {
		missing = append(missing, "subdomain (POLARIS_SUBDOMAIN)")
	}
	if s.Username == "" {
		missing = append(missing, "username (POLARIS_USERNAME)")
	}
	if s.Password == "" {
		missing = append(missing, "password (POLARIS_PASSWORD)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	if s.Keep < 0 {
		return fmt.Errorf("%w: keep must be >= 0, got %d", ErrInvalidSetting, s.Keep)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidSetting, s.Timeout)
	}

	return nil
}

// BaseURL returns the Polaris account URL. A bare subdomain becomes
// https://<subdomain>.my.rubrik.com, a value containing a dot is taken as a
// host name, and a value with a scheme is used as-is.
func (s Settings) BaseURL() string {
	sub := strings.TrimRight(strings.TrimSpace(s.Subdomain), "/")
	switch {
	case strings.Contains(sub, "://"):
		return sub
	case strings.Contains(sub, "."):
		return "https://" + sub
	default:
		return "https://" + sub + DomainSuffix
	}
}

// String renders the settings for debug logging without the password.
func (s Settings) String() string {
	return fmt.Sprintf("subdomain=%s username=%s keep=%d timeout=%s instance=%q metadata=%q dry-run=%t strict=%t",
		s.Subdomain, s.Username, s.Keep, s.Timeout, s.InstanceID, s.MetadataEndpoint, s.DryRun, s.StrictTrigger)
}
