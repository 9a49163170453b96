// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import (
	"errors"
	"syscall"

	"github.com/openthread/otbr/pkg/ip6"
)

// upcall is a NOCACHE notification read from the kernel: a multicast
// datagram arrived on iif with no matching MFC entry.
type upcall struct {
	Src, Group ip6.Address
	Iif        MifIndex
}

// counters are the per-route kernel counters reported by
// SIOCGETSGCNT_IN6.
type counters struct {
	PktCnt, ByteCnt, WrongIf uint64
}

// kernelSocket is the contract the rest of the manager programs
// against. linuxRouterSocket (kernel_linux.go) is the real
// implementation; fakeKernelSocket (manager_test.go) is a test double.
type kernelSocket interface {
	// installMFC writes or overwrites an MFC entry.
	installMFC(route MulticastRoute, iif, oif MifIndex) error
	// deleteMFC removes an MFC entry. ENOENT is treated as success by
	// the caller, not by this method: callers inspect the returned
	// error to decide.
	deleteMFC(route MulticastRoute, iif MifIndex) error
	// queryCounters reads the kernel's per-route packet/byte counters.
	queryCounters(route MulticastRoute) (counters, error)
	// recvUpcall reads and decodes one pending kernel message. It
	// returns ok=false for messages that are not NOCACHE upcalls.
	recvUpcall() (u upcall, ok bool, err error)
	// fd returns the underlying file descriptor, for use with
	// select/poll in Manager.Prepare.
	fd() int
	// close releases the socket. Safe to call multiple times.
	close()
}

// isNotExist reports whether err represents ENOENT, the case in which
// spec.md treats an MFC deletion as having already succeeded.
func isNotExist(err error) bool {
	return errors.Is(err, syscall.ENOENT)
}
