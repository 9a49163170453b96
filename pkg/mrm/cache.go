// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import "sort"

// forwardingCache is the Multicast Forwarding Cache: an ordered map
// mirroring the kernel's own MFC. Go maps have no iteration order, so
// ordered traversal (needed for deterministic dumps and for the
// unblock/expire/remove sweeps) is provided by sortedKeys, computed on
// demand rather than maintained incrementally — the MFC is expected to
// stay small (bounded by active multicast flows), so an O(n log n)
// sort per sweep is cheaper than the bookkeeping of a balanced tree.
type forwardingCache struct {
	routes map[MulticastRoute]*RouteInfo
}

func newForwardingCache() *forwardingCache {
	return &forwardingCache{routes: make(map[MulticastRoute]*RouteInfo)}
}

func (c *forwardingCache) get(route MulticastRoute) (*RouteInfo, bool) {
	info, ok := c.routes[route]
	return info, ok
}

func (c *forwardingCache) insert(route MulticastRoute, info *RouteInfo) {
	c.routes[route] = info
}

func (c *forwardingCache) erase(route MulticastRoute) {
	delete(c.routes, route)
}

func (c *forwardingCache) len() int {
	return len(c.routes)
}

func (c *forwardingCache) clear() {
	c.routes = make(map[MulticastRoute]*RouteInfo)
}

// sortedKeys returns the cache's keys ordered by MulticastRoute.Less.
// Safe to erase from the cache while iterating over a previously
// returned slice: the slice is a snapshot, independent of the map.
func (c *forwardingCache) sortedKeys() []MulticastRoute {
	keys := make([]MulticastRoute, 0, len(c.routes))
	for k := range c.routes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
