// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import (
	"fmt"
	"time"

	"github.com/openthread/otbr/pkg/ip6"
)

// MulticastRoute is the key of a Multicast Forwarding Cache entry: a
// (source, group) pair. Ordering is group-major, source-minor; this
// matters only for deterministic dump/test iteration order.
type MulticastRoute struct {
	Src, Group ip6.Address
}

func (r MulticastRoute) String() string {
	return fmt.Sprintf("%s=>%s", r.Src, r.Group)
}

// Less implements the total order required by spec: group compared
// first, then source.
func (r MulticastRoute) Less(o MulticastRoute) bool {
	if c := r.Group.Compare(o.Group); c != 0 {
		return c < 0
	}
	return r.Src.Less(o.Src)
}

// RouteInfo is the value of a Multicast Forwarding Cache entry.
type RouteInfo struct {
	// Iif is the input MIF this entry was learned on.
	Iif MifIndex
	// Oif is the output MIF, or MifNone if this is a negative-cache
	// (block) entry.
	Oif MifIndex
	// LastUse is the last time traffic was observed or the entry was
	// (re)installed.
	LastUse time.Time
	// ValidPktCnt is the kernel packet counter observed at the last
	// activity check. Per spec.md §9 (preserved deviation), this
	// stores the raw pktcnt reported by the kernel, not
	// pktcnt-wrong_if, even though that difference is what the
	// engine compares against on the next pass.
	ValidPktCnt uint64
}

func newRouteInfo(iif, oif MifIndex, now time.Time) *RouteInfo {
	return &RouteInfo{Iif: iif, Oif: oif, LastUse: now}
}
