// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import (
	"fmt"

	"github.com/openthread/otbr/pkg/ip6"
)

// listenerSet mirrors the set of multicast group addresses currently
// registered by Thread Multicast Listener Registrations (MLR). Add and
// Remove assert their preconditions: double-add and double-remove are
// caller bugs, not runtime conditions, matching the C++ implementation's
// use of assert() rather than an error return.
type listenerSet map[ip6.Address]struct{}

func newListenerSet() listenerSet {
	return make(listenerSet)
}

// has reports whether group is currently registered.
func (s listenerSet) has(group ip6.Address) bool {
	_, ok := s[group]
	return ok
}

// add registers group. Panics if group is already registered.
func (s listenerSet) add(group ip6.Address) {
	if s.has(group) {
		panic(fmt.Sprintf("mrm: listener %s already registered", group))
	}
	s[group] = struct{}{}
}

// remove unregisters group. Panics if group is not registered.
func (s listenerSet) remove(group ip6.Address) {
	if !s.has(group) {
		panic(fmt.Sprintf("mrm: listener %s not registered", group))
	}
	delete(s, group)
}
