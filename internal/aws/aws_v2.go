// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"

	"github.com/tfctl/ec2snap/internal/log"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, AWS_EC2_METADATA_SERVICE_ENDPOINT,
// etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup. Options can override profile, region, and retryer without
// changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}
	log.Debugf("loadOpts built: len=%d", len(loadOpts))

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("config loaded")
	return cfg, nil
}

// NewIMDS constructs an instance metadata client from the provided config.
// Requests are never retried; a metadata failure aborts the run.
func NewIMDS(cfg awsv2.Config, optFns ...func(*imds.Options)) *imds.Client {
	optFns = append([]func(*imds.Options){func(o *imds.Options) {
		o.Retryer = awsv2.NopRetryer{}
	}}, optFns...)
	client := imds.NewFromConfig(cfg, optFns...)
	log.Debugf("imds client created")
	return client
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// WithIMDSEndpoint points the metadata client at a non-default address. An
// empty endpoint leaves the SDK default (169.254.169.254) in place.
func WithIMDSEndpoint(endpoint string) func(*imds.Options) {
	return func(o *imds.Options) {
		if endpoint != "" {
			o.Endpoint = endpoint
		}
	}
}

// WithIMDSTimeout bounds every metadata request by timeout in place of the
// SDK's fixed per-operation limit. A zero timeout keeps the SDK default.
func WithIMDSTimeout(timeout time.Duration) func(*imds.Options) {
	return func(o *imds.Options) {
		if timeout <= 0 {
			return
		}
		o.HTTPClient = awshttp.NewBuildableClient().WithTimeout(timeout)
		o.DisableDefaultTimeout = true
	}
}
