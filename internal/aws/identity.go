// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"

	"github.com/tfctl/ec2snap/internal/log"
)

var (
	// ErrMetadataUnavailable means the metadata service could not be read.
	ErrMetadataUnavailable = errors.New("instance metadata unavailable")
	// ErrNoInstanceID means the identity document carried no instanceId.
	ErrNoInstanceID = errors.New("instance identity document has no instanceId")
)

// Identity is what ec2snap needs to know about the instance it runs on.
type Identity struct {
	InstanceID   string `json:"instanceId" yaml:"instanceId"`
	Region       string `json:"region,omitempty" yaml:"region,omitempty"`
	AccountID    string `json:"accountId,omitempty" yaml:"accountId,omitempty"`
	InstanceType string `json:"instanceType,omitempty" yaml:"instanceType,omitempty"`
}

// IdentityDocumentAPI is the subset of *imds.Client used to read the instance
// identity document.
type IdentityDocumentAPI interface {
	GetInstanceIdentityDocument(context.Context, *imds.GetInstanceIdentityDocumentInput, ...func(*imds.Options)) (*imds.GetInstanceIdentityDocumentOutput, error)
}

// IdentityResolver reads the instance identity from the metadata service.
type IdentityResolver struct {
	client IdentityDocumentAPI
}

// NewIdentityResolver returns a resolver backed by client.
func NewIdentityResolver(client IdentityDocumentAPI) *IdentityResolver {
	return &IdentityResolver{client: client}
}

// Resolve fetches /latest/dynamic/instance-identity/document and returns the
// identity it describes.
func (r *IdentityResolver) Resolve(ctx context.Context) (Identity, error) {
	out, err := r.client.GetInstanceIdentityDocument(ctx, &imds.GetInstanceIdentityDocumentInput{})
	if err != nil {
		log.Debugf("identity document err: err=%v", err)
		return Identity{}, fmt.Errorf("%w: %w", ErrMetadataUnavailable, err)
	}

	doc := out.InstanceIdentityDocument
	if doc.InstanceID == "" {
		return Identity{}, ErrNoInstanceID
	}

	id := Identity{
		InstanceID:   doc.InstanceID,
		Region:       doc.Region,
		AccountID:    doc.AccountID,
		InstanceType: doc.InstanceType,
	}
	log.Debugf("identity resolved: instance=%s region=%s", id.InstanceID, id.Region)
	return id, nil
}

// StaticIdentity always resolves to the same instance. It backs the
// --instance-id override, which skips the metadata service.
type StaticIdentity string

// Resolve returns the static instance id.
func (s StaticIdentity) Resolve(context.Context) (Identity, error) {
	if s == "" {
		return Identity{}, ErrNoInstanceID
	}
	return Identity{InstanceID: string(s)}, nil
}
