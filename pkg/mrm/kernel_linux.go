// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package mrm

import (
	"fmt"
	"net"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/openthread/otbr/pkg/ip6"
)

// linuxRouterSocket owns the raw ICMPv6 socket used to program the
// kernel's IPv6 multicast forwarding plane (MRT6), per spec.md §4.E/§6.
type linuxRouterSocket struct {
	sock int
}

// openRouterSocket creates and configures the router socket: a raw
// ICMPv6 socket, MRT6_INIT, a block-all ICMP6_FILTER, and the two MIFs.
// Any failure rolls the socket back completely, matching
// InitMulticastRouterSock in the original implementation.
func openRouterSocket(threadIfIndex, backboneIfIndex int) (_ *linuxRouterSocket, err error) {
	fd, err := unix.Socket(unix.AF_INET6, unix.SOCK_RAW, unix.IPPROTO_ICMPV6)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}

	s := &linuxRouterSocket{sock: fd}
	defer func() {
		if err != nil {
			s.close()
		}
	}()

	one := 1
	if err = setsockoptInt(fd, unix.IPPROTO_IPV6, sockOptMRT6Init, one); err != nil {
		return nil, os.NewSyscallError("setsockopt MRT6_INIT", err)
	}

	filter := unix.ICMPv6Filter{}
	blockAllICMPv6(&filter)
	if err = unix.SetsockoptICMPv6Filter(fd, unix.IPPROTO_ICMPV6, unix.ICMPV6_FILTER, &filter); err != nil {
		return nil, os.NewSyscallError("setsockopt ICMP6_FILTER", err)
	}

	if err = addMIF(fd, MifThread, threadIfIndex); err != nil {
		return nil, err
	}
	if err = addMIF(fd, MifBackbone, backboneIfIndex); err != nil {
		return nil, err
	}

	return s, nil
}

// resolveIfIndex resolves an interface name to a kernel interface
// index, the way the rest of the corpus does it
// (net.InterfaceByName rather than a hand-rolled if_nametoindex call).
func resolveIfIndex(name string) (int, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return 0, err
	}
	return iface.Index, nil
}

func blockAllICMPv6(f *unix.ICMPv6Filter) {
	for i := range f.Data {
		f.Data[i] = 0xffffffff
	}
}

func addMIF(fd int, mif MifIndex, ifIndex int) error {
	m := mif6ctl{
		mifi:      uint16(mif),
		threshold: 1,
		pifIndex:  uint16(ifIndex),
	}
	if err := setsockoptStruct(fd, unix.IPPROTO_IPV6, sockOptMRT6AddMIF, unsafe.Pointer(&m), unsafe.Sizeof(m)); err != nil {
		return os.NewSyscallError(fmt.Sprintf("setsockopt MRT6_ADD_MIF(%s)", mif), err)
	}
	return nil
}

func (s *linuxRouterSocket) installMFC(route MulticastRoute, iif, oif MifIndex) error {
	m := newMf6cctl(route, iif)
	if oif != MifNone {
		m.ifset.set(oif)
	}
	if err := setsockoptStruct(s.sock, unix.IPPROTO_IPV6, sockOptMRT6AddMFC, unsafe.Pointer(&m), unsafe.Sizeof(m)); err != nil {
		return os.NewSyscallError("setsockopt MRT6_ADD_MFC", err)
	}
	return nil
}

func (s *linuxRouterSocket) deleteMFC(route MulticastRoute, iif MifIndex) error {
	m := newMf6cctl(route, iif)
	if err := setsockoptStruct(s.sock, unix.IPPROTO_IPV6, sockOptMRT6DelMFC, unsafe.Pointer(&m), unsafe.Sizeof(m)); err != nil {
		return os.NewSyscallError("setsockopt MRT6_DEL_MFC", err)
	}
	return nil
}

func (s *linuxRouterSocket) queryCounters(route MulticastRoute) (counters, error) {
	req := siocSGReq6{
		src: addrToSockaddrIn6(route.Src),
		grp: addrToSockaddrIn6(route.Group),
	}
	if err := ioctlStruct(s.sock, siocGetSGCntIn6, unsafe.Pointer(&req)); err != nil {
		return counters{}, os.NewSyscallError("ioctl SIOCGETSGCNT_IN6", err)
	}
	return counters{PktCnt: req.pktcnt, ByteCnt: req.bytecnt, WrongIf: req.wrongIf}, nil
}

func (s *linuxRouterSocket) recvUpcall() (upcall, bool, error) {
	buf := make([]byte, 128)
	n, err := unix.Read(s.sock, buf)
	if err != nil {
		return upcall{}, false, os.NewSyscallError("read", err)
	}
	if n < int(unsafe.Sizeof(mrt6msg{})) {
		return upcall{}, false, nil
	}
	msg := (*mrt6msg)(unsafe.Pointer(&buf[0]))
	if msg.mbz != 0 || msg.msgtype != mrt6MsgNocache {
		return upcall{}, false, nil
	}
	src, err := ip6.FromSlice(msg.src[:])
	if err != nil {
		return upcall{}, false, err
	}
	dst, err := ip6.FromSlice(msg.dst[:])
	if err != nil {
		return upcall{}, false, err
	}
	return upcall{Src: src, Group: dst, Iif: MifIndex(msg.mif)}, true, nil
}

func (s *linuxRouterSocket) fd() int { return s.sock }

func (s *linuxRouterSocket) close() {
	if s.sock >= 0 {
		unix.Close(s.sock)
		s.sock = -1
	}
}

func newMf6cctl(route MulticastRoute, iif MifIndex) mf6cctl {
	return mf6cctl{
		origin:   addrToSockaddrIn6(route.Src),
		mcastgrp: addrToSockaddrIn6(route.Group),
		parent:   uint16(iif),
	}
}

func addrToSockaddrIn6(a ip6.Address) sockaddrIn6Raw {
	var s sockaddrIn6Raw
	s.family = unix.AF_INET6
	s.addr = in6Addr(a)
	return s
}

func setsockoptInt(fd, level, opt, value int) error {
	v := value
	return setsockoptStruct(fd, level, opt, unsafe.Pointer(&v), unsafe.Sizeof(v))
}

func setsockoptStruct(fd, level, opt int, p unsafe.Pointer, size uintptr) error {
	_, _, errno := unix.Syscall6(unix.SYS_SETSOCKOPT, uintptr(fd), uintptr(level), uintptr(opt), uintptr(p), size, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctlStruct(fd, req int, p unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(p))
	if errno != 0 {
		return errno
	}
	return nil
}
