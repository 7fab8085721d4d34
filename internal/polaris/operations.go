// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package polaris

import "time"

// Operation names sent with each request.
const (
	OpInstancesList   = "AWSInstancesList"
	OpTakeSnapshot    = "TakeAWSInstanceSnapshot"
	OpSnapshotDetails = "AWSInstanceSnapshotDetails"
	OpDeleteSnapshot  = "DeletePolarisSnapshot"
)

// GraphQL input types. The Go type names are what the client emits in the
// variable definitions, so they must match the Polaris schema.
type (
	UUID                      string
	HierarchySortByField      string
	HierarchySortOrder        string
	PolarisSnapshotSortByEnum string
)

// Filter is a hierarchy filter clause.
type Filter struct {
	Field string   `json:"field"`
	Texts []string `json:"texts"`
}

// instancesListQuery resolves an EC2 instance id to its Polaris handle.
type instancesListQuery struct {
	EC2InstancesList struct {
		Edges []struct {
			Node struct {
				ID string `graphql:"id"`
			} `graphql:"node"`
		} `graphql:"edges"`
	} `graphql:"ec2InstancesList: awsNativeEc2InstanceConnection(sortBy: $sortBy, sortOrder: $sortOrder, filter: $filters)"`
}

// takeSnapshotMutation requests on-demand snapshots. The response only tracks
// the asynchronous task chains.
type takeSnapshotMutation struct {
	CreateAwsNativeEc2InstanceSnapshots struct {
		TaskchainUuids []struct {
			Ec2InstanceID string `graphql:"ec2InstanceId"`
			TaskchainUUID string `graphql:"taskchainUuid"`
		} `graphql:"taskchainUuids"`
		Errors []struct {
			Error string `graphql:"error"`
		} `graphql:"errors"`
	} `graphql:"createAwsNativeEc2InstanceSnapshots(ec2InstanceIds: $ec2InstanceIds)"`
}

// snapshotDetailsQuery lists snapshots of one instance in server order.
type snapshotDetailsQuery struct {
	Snappable struct {
		ID                 string `graphql:"id"`
		InstanceID         string `graphql:"instanceId"`
		InstanceName       string `graphql:"instanceName"`
		SnapshotConnection struct {
			Nodes []struct {
				ID                 string    `graphql:"id"`
				Date               time.Time `graphql:"date"`
				IsOnDemandSnapshot bool      `graphql:"isOnDemandSnapshot"`
			} `graphql:"nodes"`
		} `graphql:"snapshotConnection(filter: {isOnDemandSnapshot: $isOnDemandSnapshot}, sortBy: $sortBy)"`
	} `graphql:"snappable: awsNativeEc2Instance(fid: $snappableFid)"`
}

// deleteSnapshotMutation expires one snapshot.
type deleteSnapshotMutation struct {
	DeletePolarisSnapshot rawScalar `graphql:"deletePolarisSnapshot(snapshotFid: $snapshotFid)"`
}

// rawScalar keeps whatever JSON a scalar field returned. Implementing
// json.Unmarshaler makes the query builder treat it as a leaf.
type rawScalar struct {
	raw []byte
}

func (r *rawScalar) UnmarshalJSON(b []byte) error {
	r.raw = append(r.raw[:0], b...)
	return nil
}
