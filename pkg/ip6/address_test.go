// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ip6

import "testing"

func TestScope(t *testing.T) {
	cases := []struct {
		addr string
		want uint8
	}{
		{"ff0e::1", ScopeGlobal},
		{"ff03::fc", ScopeRealmLocal},
		{"ff05::abcd", ScopeSiteLocal},
		{"ff02::1", ScopeLinkLocal},
		{"ff08::1", ScopeOrgLocal},
		{"fd00::1", ScopeGlobal},
		{"fe80::1", ScopeLinkLocal},
		{"::1", ScopeNodeLocal},
	}
	for _, c := range cases {
		a := MustParseAddress(c.addr)
		if got := a.Scope(); got != c.want {
			t.Errorf("Scope(%s): got %#x want %#x", c.addr, got, c.want)
		}
	}
}

func TestIsMulticast(t *testing.T) {
	if !MustParseAddress("ff05::abcd").IsMulticast() {
		t.Error("ff05::abcd: expected multicast")
	}
	if MustParseAddress("fd00::1").IsMulticast() {
		t.Error("fd00::1: expected unicast")
	}
}

func TestOrdering(t *testing.T) {
	a := MustParseAddress("2001:db8::1")
	b := MustParseAddress("2001:db8::2")
	if !a.Less(b) {
		t.Error("2001:db8::1 should be less than 2001:db8::2")
	}
	if b.Less(a) {
		t.Error("2001:db8::2 should not be less than 2001:db8::1")
	}
	if a.Compare(a) != 0 {
		t.Error("address should compare equal to itself")
	}
}

func TestParseAddressRejectsIPv4(t *testing.T) {
	if _, err := ParseAddress("192.0.2.1"); err == nil {
		t.Error("expected error parsing IPv4 address as ip6.Address")
	}
}

func TestString(t *testing.T) {
	a := MustParseAddress("ff05::abcd")
	if got, want := a.String(), "ff05::abcd"; got != want {
		t.Errorf("String: got %s want %s", got, want)
	}
}
