// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import "github.com/openthread/otbr/pkg/ip6"

// forwardMif computes the output MIF for a packet arriving on iif for
// group, given the current listener set. See spec.md §4.F.
//
//	iif       condition                          oif
//	Backbone  group in listeners                 Thread
//	Backbone  group not in listeners             None (block)
//	Thread    scope(group) > RealmLocal (0x3)     Backbone
//	Thread    otherwise                           None
//	other     -                                   ErrInvalidMIF
func forwardMif(iif MifIndex, group ip6.Address, listeners listenerSet) (MifIndex, error) {
	switch iif {
	case MifBackbone:
		if listeners.has(group) {
			return MifThread, nil
		}
		return MifNone, nil
	case MifThread:
		if group.Scope() > ip6.ScopeRealmLocal {
			return MifBackbone, nil
		}
		return MifNone, nil
	default:
		return MifNone, ErrInvalidMIF
	}
}
