// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package mrm

// Wire-level constants and structures for the Linux IPv6 multicast
// routing socket API, <linux/mroute6.h>. golang.org/x/sys/unix does not
// export these (it covers the IPv4 mroute.h shapes but not the IPv6
// ones), so they are hand-declared here in the same generated-const
// style the corpus uses for the IPv4 side
// (other_examples/antrea-io-antrea__ztypes_linux.go).
const (
	mrt6Base          = 200
	sockOptMRT6Init   = mrt6Base + 0
	sockOptMRT6Done   = mrt6Base + 1
	sockOptMRT6AddMIF = mrt6Base + 2
	sockOptMRT6DelMIF = mrt6Base + 3
	sockOptMRT6AddMFC = mrt6Base + 4
	sockOptMRT6DelMFC = mrt6Base + 5

	mrt6MsgNocache = 1

	siocProtoPrivate = 0x89e0
	siocGetSGCntIn6  = siocProtoPrivate + 1
	ifSetWords       = 8
)

// mif6ctl mirrors struct mif6ctl from <linux/mroute6.h>.
type mif6ctl struct {
	mifi      uint16 // mifi_t mif6c_mifi
	flags     uint8  // mif6c_flags
	threshold uint8  // vifc_threshold
	pifIndex  uint16 // mif6c_pifi, physical ifindex
	_         uint16 // struct padding to align the trailing u32
	rateLimit uint32 // vifc_rate_limit
}

// in6Addr mirrors struct in6_addr.
type in6Addr [16]byte

// sockaddrIn6Raw mirrors the fields of struct sockaddr_in6 that the
// kernel mroute6 API actually inspects (family and address); the
// remaining fields are zeroed padding.
type sockaddrIn6Raw struct {
	family   uint16
	port     uint16
	flowinfo uint32
	addr     in6Addr
	scopeID  uint32
}

// ifSet mirrors struct if_set, a bitset over MIF indices.
type ifSet struct {
	bits [ifSetWords]uint32
}

func (s *ifSet) set(mif MifIndex) {
	s.bits[mif/32] |= 1 << (uint(mif) % 32)
}

// mf6cctl mirrors struct mf6cctl from <linux/mroute6.h>.
type mf6cctl struct {
	origin   sockaddrIn6Raw
	mcastgrp sockaddrIn6Raw
	parent   uint16
	_        uint16
	ifset    ifSet
}

// sioc_sg_req6 mirrors struct sioc_sg_req6, used with SIOCGETSGCNT_IN6.
type siocSGReq6 struct {
	src     sockaddrIn6Raw
	grp     sockaddrIn6Raw
	pktcnt  uint64
	bytecnt uint64
	wrongIf uint64
}

// mrt6msg mirrors struct mrt6msg, the shape of a message read off the
// router socket on a cache miss.
type mrt6msg struct {
	mbz     uint8
	msgtype uint8
	mif     uint16
	pad     uint32
	src     in6Addr
	dst     in6Addr
}
