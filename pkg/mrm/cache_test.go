// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import (
	"testing"
	"time"

	"github.com/openthread/otbr/pkg/ip6"
)

func TestForwardingCacheOrdering(t *testing.T) {
	c := newForwardingCache()
	routes := []MulticastRoute{
		{Src: ip6.MustParseAddress("fd00::2"), Group: ip6.MustParseAddress("ff05::1")},
		{Src: ip6.MustParseAddress("fd00::1"), Group: ip6.MustParseAddress("ff05::1")},
		{Src: ip6.MustParseAddress("fd00::1"), Group: ip6.MustParseAddress("ff03::1")},
	}
	for _, r := range routes {
		c.insert(r, newRouteInfo(MifThread, MifBackbone, time.Now()))
	}

	keys := c.sortedKeys()
	if len(keys) != 3 {
		t.Fatalf("got %d keys, want 3", len(keys))
	}
	// group ff03::1 sorts before ff05::1; within ff05::1, fd00::1
	// sorts before fd00::2.
	want := []MulticastRoute{routes[2], routes[1], routes[0]}
	for i, k := range keys {
		if k != want[i] {
			t.Errorf("key %d: got %+v want %+v", i, k, want[i])
		}
	}
}

func TestForwardingCacheEraseDuringIteration(t *testing.T) {
	c := newForwardingCache()
	group := ip6.MustParseAddress("ff05::1")
	r1 := MulticastRoute{Src: ip6.MustParseAddress("fd00::1"), Group: group}
	r2 := MulticastRoute{Src: ip6.MustParseAddress("fd00::2"), Group: group}
	c.insert(r1, newRouteInfo(MifBackbone, MifNone, time.Now()))
	c.insert(r2, newRouteInfo(MifBackbone, MifNone, time.Now()))

	for _, k := range c.sortedKeys() {
		c.erase(k)
	}
	if c.len() != 0 {
		t.Errorf("expected empty cache after erasing all keys, got %d entries", c.len())
	}
}

func TestForwardingCacheOverwrite(t *testing.T) {
	c := newForwardingCache()
	route := MulticastRoute{Src: ip6.MustParseAddress("fd00::1"), Group: ip6.MustParseAddress("ff05::1")}
	c.insert(route, newRouteInfo(MifBackbone, MifNone, time.Now()))
	c.insert(route, newRouteInfo(MifBackbone, MifThread, time.Now()))

	if c.len() != 1 {
		t.Fatalf("expected overwrite, got %d entries", c.len())
	}
	info, ok := c.get(route)
	if !ok || info.Oif != MifThread {
		t.Errorf("expected overwritten entry with Oif=Thread, got %+v", info)
	}
}
