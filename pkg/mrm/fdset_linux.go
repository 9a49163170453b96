// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package mrm

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Sys returns the FdSet reinterpreted as a *unix.FdSet, suitable for
// passing directly to unix.Select. The two types share layout (1024
// descriptors, 16 64-bit words on a 64-bit platform).
func (s *FdSet) Sys() *unix.FdSet {
	return (*unix.FdSet)(unsafe.Pointer(s))
}
