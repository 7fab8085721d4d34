// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package polaris

import (
	"context"
	"fmt"
	"strings"
	"time"

	graphql "github.com/hasura/go-graphql-client"
	"github.com/tidwall/gjson"

	"github.com/tfctl/ec2snap/internal/log"
)

// Snapshot is one snapshot record as Polaris reports it.
type Snapshot struct {
	ID         string    `json:"id" yaml:"id"`
	Date       time.Time `json:"date" yaml:"date"`
	IsOnDemand bool      `json:"isOnDemand" yaml:"isOnDemand"`
}

// TaskChain tracks one asynchronous snapshot job.
type TaskChain struct {
	InstanceID  string `json:"instanceId" yaml:"instanceId"`
	TaskChainID string `json:"taskChainId" yaml:"taskChainId"`
}

// TriggerResult is the response of a snapshot request. Errors holds the
// per-instance errors Polaris embeds in an otherwise successful response.
type TriggerResult struct {
	TaskChains []TaskChain `json:"taskChains" yaml:"taskChains"`
	Errors     []string    `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Err returns ErrSnapshotRejected when the response carries embedded errors.
func (r TriggerResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSnapshotRejected, strings.Join(r.Errors, "; "))
}

// TakeSnapshot requests an on-demand snapshot of the instance with the given
// handle. It returns as soon as the request is accepted and does not wait for
// the task chain.
func (c *Client) TakeSnapshot(ctx context.Context, handle string) (TriggerResult, error) {
	var m takeSnapshotMutation
	vars := map[string]any{
		"ec2InstanceIds": []UUID{UUID(handle)},
	}

	if err := c.mutate(ctx, OpTakeSnapshot, &m, vars); err != nil {
		return TriggerResult{}, err
	}

	var result TriggerResult
	for _, tc := range m.CreateAwsNativeEc2InstanceSnapshots.TaskchainUuids {
		result.TaskChains = append(result.TaskChains, TaskChain{
			InstanceID:  tc.Ec2InstanceID,
			TaskChainID: tc.TaskchainUUID,
		})
	}
	for _, e := range m.CreateAwsNativeEc2InstanceSnapshots.Errors {
		result.Errors = append(result.Errors, e.Error)
	}

	log.Debugf("snapshot response: taskchains=%v errors=%v", result.TaskChains, result.Errors)
	return result, nil
}

// OnDemandSnapshots lists the on-demand snapshots of the instance with the
// given handle, sorted by date as the server returns them (newest first).
func (c *Client) OnDemandSnapshots(ctx context.Context, handle string) ([]Snapshot, error) {
	var q snapshotDetailsQuery
	vars := map[string]any{
		"snappableFid":       UUID(handle),
		"isOnDemandSnapshot": graphql.Boolean(true),
		"sortBy":             PolarisSnapshotSortByEnum("Date"),
	}

	if err := c.query(ctx, OpSnapshotDetails, &q, vars); err != nil {
		return nil, err
	}

	nodes := q.Snappable.SnapshotConnection.Nodes
	snapshots := make([]Snapshot, 0, len(nodes))
	for _, n := range nodes {
		snapshots = append(snapshots, Snapshot{
			ID:         n.ID,
			Date:       n.Date,
			IsOnDemand: n.IsOnDemandSnapshot,
		})
	}

	log.Debugf("listed snapshots: handle=%s count=%d", handle, len(snapshots))
	return snapshots, nil
}

// DeleteSnapshot expires a single snapshot.
func (c *Client) DeleteSnapshot(ctx context.Context, snapshotID string) error {
	var m deleteSnapshotMutation
	vars := map[string]any{
		"snapshotFid": UUID(snapshotID),
	}

	if err := c.mutate(ctx, OpDeleteSnapshot, &m, vars); err != nil {
		return err
	}

	log.Debugf("delete response: snapshot=%s result=%s", snapshotID, gjson.ParseBytes(m.DeletePolarisSnapshot.raw).String())
	return nil
}
