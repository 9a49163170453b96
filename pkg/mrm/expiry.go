// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import "time"

// expireTimeout is the idle timeout after which an MFC entry becomes a
// candidate for eviction, spec.md §4.G.
const expireTimeout = 300 * time.Second

// expire sweeps the forwarding cache for entries whose last recorded
// activity is older than expireTimeout, refreshing still-active routes
// and evicting the rest. It runs synchronously at the start of every
// addMulticastForwardingCache call, so the cache never grows past its
// natural churn without a chance to shrink first (spec.md §5).
func (m *Manager) expire(now time.Time) {
	for _, route := range m.mfc.sortedKeys() {
		info, ok := m.mfc.get(route)
		if !ok {
			continue
		}
		if !info.LastUse.Add(expireTimeout).Before(now) {
			continue
		}
		if m.refreshRouteInfo(route, info, now) {
			// Still live: activity engine already updated
			// LastUse/ValidPktCnt.
			continue
		}
		if err := m.sock.deleteMFC(route, info.Iif); err != nil && !isNotExist(err) {
			m.logger.Warnf("expire: delete %s failed: %v", route, err)
			continue
		}
		m.mfc.erase(route)
		m.logger.Debugf("expire: evicted %s (iif=%s oif=%s)", route, info.Iif, info.Oif)
	}
}

// refreshRouteInfo queries the kernel counters for route and reports
// whether the route is still considered live. Per spec.md §9 (an
// intentionally preserved deviation from a strict reading of the
// upstream algorithm), the comparison is made against pktcnt-wrong_if
// but the stored ValidPktCnt is overwritten with the raw pktcnt, so
// subsequent comparisons are against total packet count rather than
// the wrong-interface-adjusted count.
func (m *Manager) refreshRouteInfo(route MulticastRoute, info *RouteInfo, now time.Time) bool {
	c, err := m.sock.queryCounters(route)
	if err != nil {
		m.logger.Warnf("expire: SIOCGETSGCNT_IN6 %s failed: %v", route, err)
		return true // keep the entry; we couldn't tell if it's idle
	}
	valid := c.PktCnt - c.WrongIf
	if valid == info.ValidPktCnt {
		return false
	}
	info.ValidPktCnt = c.PktCnt
	info.LastUse = now
	return true
}
