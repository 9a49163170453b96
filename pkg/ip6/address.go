// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ip6 provides the IPv6 address value type and multicast scope
// classification used by the backbone multicast routing manager.
package ip6

import (
	"bytes"
	"fmt"
	"net"
)

// AddressBytes is the length in bytes of an IPv6 address.
const AddressBytes = 16

// Scope values for multicast addresses, RFC 4291 §2.7. Also used to
// classify unicast address scope.
const (
	ScopeReserved   = 0x0
	ScopeNodeLocal  = 0x1
	ScopeLinkLocal  = 0x2
	ScopeRealmLocal = 0x3
	ScopeAdminLocal = 0x4
	ScopeSiteLocal  = 0x5
	ScopeOrgLocal   = 0x8
	ScopeGlobal     = 0xe
)

// Address is a 16-byte IPv6 address value.
type Address [AddressBytes]byte

// Unspecified is the all-zero address.
var Unspecified Address

// FromSlice builds an Address from a 16-byte slice.
func FromSlice(b []byte) (a Address, err error) {
	if len(b) != AddressBytes {
		err = fmt.Errorf("ip6: %d is not a valid address length", len(b))
		return
	}
	copy(a[:], b)
	return
}

// FromNetIP builds an Address from a net.IP, rejecting IPv4 forms.
func FromNetIP(ip net.IP) (a Address, err error) {
	ip16 := ip.To16()
	if ip16 == nil || ip.To4() != nil {
		err = fmt.Errorf("ip6: %s is not an IPv6 address", ip)
		return
	}
	copy(a[:], ip16)
	return
}

// ParseAddress parses the canonical textual form of an IPv6 address.
func ParseAddress(s string) (Address, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return Address{}, fmt.Errorf("ip6: %q is not a valid IP address", s)
	}
	return FromNetIP(ip)
}

// MustParseAddress is like ParseAddress but panics on error. Intended for
// tests and static configuration.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return net.IP(a[:]).String()
}

// IsMulticast reports whether a is a multicast address (ff00::/8).
func (a Address) IsMulticast() bool {
	return a[0] == 0xff
}

// IsUnspecified reports whether a is the all-zero address.
func (a Address) IsUnspecified() bool {
	return a == Unspecified
}

// IsLoopback reports whether a is ::1.
func (a Address) IsLoopback() bool {
	return bytes.Equal(a[:15], Unspecified[:15]) && a[15] == 1
}

// IsLinkLocal reports whether a is a unicast link-local address (fe80::/10).
func (a Address) IsLinkLocal() bool {
	return a[0] == 0xfe && a[1]&0xc0 == 0x80
}

// Scope returns the address scope, 0x0-0xf. For multicast addresses this
// is the low nibble of the second address byte per RFC 4291 §2.7. Unicast
// addresses are classified as link-local, node-local (loopback), or
// global.
func (a Address) Scope() uint8 {
	switch {
	case a.IsMulticast():
		return a[1] & 0xf
	case a.IsLinkLocal():
		return ScopeLinkLocal
	case a.IsLoopback():
		return ScopeNodeLocal
	default:
		return ScopeGlobal
	}
}

// Equal reports whether a and b are the same address.
func (a Address) Equal(b Address) bool {
	return a == b
}

// Less implements the total, bytewise order over addresses.
func (a Address) Less(b Address) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater
// than b, matching bytes.Compare's contract.
func (a Address) Compare(b Address) int {
	return bytes.Compare(a[:], b[:])
}
