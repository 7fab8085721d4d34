// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tfctl/ec2snap/internal/polaris"
)

// SortFields are the snapshot fields a sort spec may name.
var SortFields = []string{"id", "date"}

// SortSnapshots orders snaps in place by a comma separated spec such as
// "-date,id". A leading "-" sorts that field descending. An empty spec leaves
// the order untouched.
func SortSnapshots(snaps []polaris.Snapshot, spec string) error {
	if spec == "" {
		return nil
	}

	type key struct {
		field     string
		ascending bool
	}

	var keys []key
	for _, field := range strings.Split(spec, ",") {
		k := key{field: strings.TrimSpace(field), ascending: true}
		if strings.HasPrefix(k.field, "-") {
			k.field = strings.TrimPrefix(k.field, "-")
			k.ascending = false
		}
		if k.field != "id" && k.field != "date" {
			return fmt.Errorf("unknown sort field %q, must be one of %v", k.field, SortFields)
		}
		keys = append(keys, k)
	}

	sort.SliceStable(snaps, func(one, two int) bool {
		for _, k := range keys {
			var cmp int
			switch k.field {
			case "id":
				cmp = strings.Compare(snaps[one].ID, snaps[two].ID)
			case "date":
				cmp = snaps[one].Date.Compare(snaps[two].Date)
			}

			if cmp != 0 {
				if k.ascending {
					return cmp < 0
				}
				return cmp > 0
			}
		}
		return false
	})

	return nil
}
