// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package polaris

import (
	"context"
	"fmt"

	"github.com/tfctl/ec2snap/internal/log"
)

// LookupInstance resolves an EC2 instance id to the Polaris handle of its
// non-archived protected object. No match is ErrInstanceNotFound; with more
// than one match the first in EC2_INSTANCE_ID order wins.
func (c *Client) LookupInstance(ctx context.Context, ec2InstanceID string) (string, error) {
	var q instancesListQuery
	vars := map[string]any{
		"sortBy":    HierarchySortByField("EC2_INSTANCE_ID"),
		"sortOrder": HierarchySortOrder("ASC"),
		"filters": []Filter{
			{Field: "EC2_INSTANCE_NAME_OR_INSTANCE_ID", Texts: []string{ec2InstanceID}},
			{Field: "IS_ARCHIVED", Texts: []string{"0"}},
		},
	}

	if err := c.query(ctx, OpInstancesList, &q, vars); err != nil {
		return "", err
	}

	edges := q.EC2InstancesList.Edges
	switch {
	case len(edges) == 0:
		return "", fmt.Errorf("%w: no active Polaris object for %s", ErrInstanceNotFound, ec2InstanceID)
	case len(edges) > 1:
		log.Warnf("%d Polaris objects match %s, using the first", len(edges), ec2InstanceID)
	}

	return edges[0].Node.ID, nil
}
