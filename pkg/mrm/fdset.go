// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

// FdSet is a minimal, allocation-free file-descriptor set, laid out
// like the classic select(2) fd_set (1024 descriptors, 16 64-bit
// words), so that on Linux it can be handed to golang.org/x/sys/unix.Select
// via Sys() without copying. Manager.Prepare/Process only need Set and
// IsSet; the external main loop owns actually calling select/poll.
type FdSet struct {
	bits [16]uint64
}

// Zero clears every bit.
func (s *FdSet) Zero() { *s = FdSet{} }

// Set marks fd as a member of the set.
func (s *FdSet) Set(fd int) {
	s.bits[fd/64] |= 1 << uint(fd%64)
}

// IsSet reports whether fd is a member of the set.
func (s *FdSet) IsSet(fd int) bool {
	return s.bits[fd/64]&(1<<uint(fd%64)) != 0
}
