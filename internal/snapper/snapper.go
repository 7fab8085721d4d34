// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapper

import (
	"context"

	"github.com/tfctl/ec2snap/internal/aws"
	"github.com/tfctl/ec2snap/internal/config"
	"github.com/tfctl/ec2snap/internal/log"
	"github.com/tfctl/ec2snap/internal/polaris"
	"github.com/tfctl/ec2snap/internal/retention"
)

// IdentityResolver yields the identity of the instance being protected.
type IdentityResolver interface {
	Resolve(ctx context.Context) (aws.Identity, error)
}

// API is the subset of the Polaris client the workflow drives.
type API interface {
	LookupInstance(ctx context.Context, ec2InstanceID string) (string, error)
	TakeSnapshot(ctx context.Context, handle string) (polaris.TriggerResult, error)
	OnDemandSnapshots(ctx context.Context, handle string) ([]polaris.Snapshot, error)
	DeleteSnapshot(ctx context.Context, snapshotID string) error
}

// Connector authenticates and returns an API bound to the new session.
type Connector func(ctx context.Context) (API, error)

// Report summarizes a run. Fields for steps that did not run stay empty.
type Report struct {
	Identity   aws.Identity        `json:"identity" yaml:"identity"`
	Handle     string              `json:"handle,omitempty" yaml:"handle,omitempty"`
	Triggered  bool                `json:"triggered" yaml:"triggered"`
	TaskChains []polaris.TaskChain `json:"taskChains,omitempty" yaml:"taskChains,omitempty"`
	Keep       int                 `json:"keep" yaml:"keep"`
	Listed     []polaris.Snapshot  `json:"listed,omitempty" yaml:"listed,omitempty"`
	Plan       retention.Result    `json:"plan" yaml:"plan"`
	Deleted    []string            `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	DryRun     bool                `json:"dryRun" yaml:"dryRun"`
}

// Runner executes the workflow with the given settings and collaborators.
type Runner struct {
	Settings config.Settings
	Identity IdentityResolver
	Connect  Connector
}

// New wires a Runner to the metadata service and Polaris. When
// Settings.InstanceID is set the metadata service is never contacted.
func New(ctx context.Context, s config.Settings) (*Runner, error) {
	r := &Runner{
		Settings: s,
		Connect:  PolarisConnector(s),
	}

	if s.InstanceID != "" {
		r.Identity = aws.StaticIdentity(s.InstanceID)
		return r, nil
	}

	cfg, err := aws.LoadAWSConfig(ctx)
	if err != nil {
		return nil, fail(StepIdentity, err)
	}
	r.Identity = aws.NewIdentityResolver(aws.NewIMDS(cfg,
		aws.WithIMDSEndpoint(s.MetadataEndpoint),
		aws.WithIMDSTimeout(s.Timeout),
	))
	return r, nil
}

// PolarisConnector authenticates against the account in s and returns a
// client carrying the session token.
func PolarisConnector(s config.Settings) Connector {
	return func(ctx context.Context) (API, error) {
		hc := polaris.NewHTTPClient(s.Timeout)
		session, err := polaris.Authenticate(ctx, hc, s.BaseURL(), s.Username, s.Password)
		if err != nil {
			return nil, err
		}
		return polaris.NewClient(ctx, hc, s.BaseURL(), session), nil
	}
}

// Run takes an on-demand snapshot of this instance and then expires the
// oldest on-demand snapshots beyond Settings.Keep. The new snapshot is created
// asynchronously and is never part of the listing of the same run.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	report := r.newReport()

	api, err := r.prepare(ctx, &report)
	if err != nil {
		return report, err
	}

	if err := r.trigger(ctx, api, &report); err != nil {
		return report, err
	}

	return report, r.retain(ctx, api, &report, true)
}

// Prune expires on-demand snapshots beyond Settings.Keep without taking a new
// one.
func (r *Runner) Prune(ctx context.Context) (Report, error) {
	report := r.newReport()

	api, err := r.prepare(ctx, &report)
	if err != nil {
		return report, err
	}

	return report, r.retain(ctx, api, &report, true)
}

// List reports the on-demand snapshots of this instance and the retention
// plan for them. Nothing is created or deleted.
func (r *Runner) List(ctx context.Context) (Report, error) {
	report := r.newReport()

	api, err := r.prepare(ctx, &report)
	if err != nil {
		return report, err
	}

	return report, r.retain(ctx, api, &report, false)
}

func (r *Runner) newReport() Report {
	return Report{Keep: r.Settings.Keep, DryRun: r.Settings.DryRun}
}

// prepare resolves the identity, authenticates and looks up the handle.
func (r *Runner) prepare(ctx context.Context, report *Report) (API, error) {
	id, err := r.Identity.Resolve(ctx)
	if err != nil {
		return nil, fail(StepIdentity, err)
	}
	report.Identity = id
	log.Infof("running on instance %s", id.InstanceID)

	api, err := r.Connect(ctx)
	if err != nil {
		return nil, fail(StepAuthenticate, err)
	}

	log.Infof("getting Polaris UUID for instance: %s", id.InstanceID)
	handle, err := api.LookupInstance(ctx, id.InstanceID)
	if err != nil {
		return nil, fail(StepLookup, err)
	}
	report.Handle = handle
	log.Infof("got UUID: %s", handle)

	return api, nil
}

func (r *Runner) trigger(ctx context.Context, api API, report *Report) error {
	if r.Settings.DryRun {
		log.Infof("dry run: skipping on demand snapshot of %s", report.Handle)
		return nil
	}

	log.Infof("taking on demand snapshot of: %s", report.Handle)
	res, err := api.TakeSnapshot(ctx, report.Handle)
	if err != nil {
		return fail(StepTrigger, err)
	}
	report.TaskChains = res.TaskChains

	if rejected := res.Err(); rejected != nil {
		if r.Settings.StrictTrigger {
			return fail(StepTrigger, rejected)
		}
		log.WithError(rejected).Warn("snapshot request reported errors, continuing")
	}

	report.Triggered = true
	for _, tc := range res.TaskChains {
		log.Infof("snapshot task chain %s started for %s", tc.TaskChainID, tc.InstanceID)
	}
	return nil
}

// retain lists the on-demand snapshots, plans retention and, when expire is
// set and this is not a dry run, deletes the expired ones one at a time.
func (r *Runner) retain(ctx context.Context, api API, report *Report, expire bool) error {
	log.Infof("looking for expired snapshots of UUID: %s, max is %d snapshots", report.Handle, r.Settings.Keep)
	snaps, err := api.OnDemandSnapshots(ctx, report.Handle)
	if err != nil {
		return fail(StepList, err)
	}
	report.Listed = snaps

	report.Plan = retention.Plan(snaps, r.Settings.Keep)
	if len(report.Plan.Expire) == 0 {
		log.Infof("no snapshots to expire")
		return nil
	}

	log.Infof("got %d expired snapshots", len(report.Plan.Expire))
	if !expire {
		return nil
	}
	if r.Settings.DryRun {
		for _, s := range report.Plan.Expire {
			log.Infof("dry run: would expire snapshot: %s", s.ID)
		}
		return nil
	}

	log.Infof("expiring %d snapshots", len(report.Plan.Expire))
	for i, s := range report.Plan.Expire {
		log.Infof("expiring snapshot: %s", s.ID)
		if err := api.DeleteSnapshot(ctx, s.ID); err != nil {
			return &StepError{
				Step:    StepExpire,
				Err:     err,
				Deleted: i,
				Pending: len(report.Plan.Expire) - i,
			}
		}
		report.Deleted = append(report.Deleted, s.ID)
	}

	return nil
}
