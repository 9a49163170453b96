// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mrm implements the Multicast Routing Manager of a Thread
// Border Router: it programs the Linux IPv6 multicast forwarding plane
// (MRT6) so that multicast datagrams cross between a Thread mesh
// interface and a Backbone LAN interface according to Thread
// Backbone-Router rules.
package mrm

import (
	"time"

	"github.com/openthread/otbr/pkg/ip6"
)

// Config configures a Manager. ThreadInterface and BackboneInterface
// are resolved to kernel interface indices at Enable time; a failure
// to resolve either is fatal to Enable (spec.md §4.B).
type Config struct {
	ThreadInterface   string
	BackboneInterface string

	// Logger receives state-transition, dump, and failure messages.
	// Defaults to defaultLogger, which forwards to
	// github.com/platinasystems/log.
	Logger Logger

	// Publisher optionally mirrors state transitions and MFC size
	// into redis, following the corpus's daemon convention. Nil
	// disables publication.
	Publisher Publisher
}

// Manager is the Multicast Routing Manager. The zero value is not
// usable; construct with New.
//
// Invariants (spec.md §3, §8):
//   - sock != nil iff Enabled().
//   - not Enabled() implies mfc is empty.
//   - every mfc entry with iif=Backbone,oif=Thread has group in listeners.
//   - every mfc entry with iif=Thread,oif=Backbone has scope(group) > RealmLocal.
type Manager struct {
	mif       *mifTable
	listeners listenerSet
	mfc       *forwardingCache
	sock      kernelSocket
	logger    Logger
	pub       Publisher
	now       func() time.Time

	// openSocket is a seam for tests: production code resolves
	// interface names and opens the real Linux router socket;
	// tests substitute a fakeKernelSocket.
	openSocket func(threadIfIndex, backboneIfIndex int) (kernelSocket, error)
	resolve    func(name string) (int, error)
}

// New constructs a disabled Manager from cfg.
func New(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = defaultLogger{}
	}
	return &Manager{
		mif:        newMifTable(cfg.ThreadInterface, cfg.BackboneInterface),
		listeners:  newListenerSet(),
		mfc:        newForwardingCache(),
		logger:     logger,
		pub:        cfg.Publisher,
		now:        time.Now,
		openSocket: openLinuxRouterSocket,
		resolve:    resolveIfIndex,
	}
}

func openLinuxRouterSocket(threadIfIndex, backboneIfIndex int) (kernelSocket, error) {
	return openRouterSocket(threadIfIndex, backboneIfIndex)
}

// Enabled reports whether the router socket is open. sock != nil iff
// Enabled(), per spec.md §3.
func (m *Manager) Enabled() bool {
	return m.sock != nil
}

// Enable opens the router socket and installs the two MIFs. If already
// enabled, Enable is a no-op. On failure the Manager remains disabled
// and any partially-created socket is rolled back.
func (m *Manager) Enable() error {
	if m.Enabled() {
		return nil
	}

	threadIndex, err := m.resolve(m.mif.threadIfName)
	if err != nil {
		m.logger.Errorf("enable: resolve %s: %v", m.mif.threadIfName, err)
		return err
	}
	backboneIndex, err := m.resolve(m.mif.backboneIfName)
	if err != nil {
		m.logger.Errorf("enable: resolve %s: %v", m.mif.backboneIfName, err)
		return err
	}

	m.mif.setIndex(MifThread, threadIndex)
	m.mif.setIndex(MifBackbone, backboneIndex)

	sock, err := m.openSocket(m.mif.indexFor(MifThread), m.mif.indexFor(MifBackbone))
	if err != nil {
		m.logger.Errorf("enable: %v", err)
		return err
	}

	m.sock = sock
	m.logger.Infof("enabled: thread=%s(%d) backbone=%s(%d)",
		m.mif.threadIfName, m.mif.indexFor(MifThread), m.mif.backboneIfName, m.mif.indexFor(MifBackbone))
	m.publish("enabled", true)
	return nil
}

// Disable closes the router socket and drops the in-memory MFC. The
// kernel's own MFC is implicitly dropped when the socket closes.
// Disable is idempotent: calling it while already disabled is a no-op.
func (m *Manager) Disable() {
	if !m.Enabled() {
		return
	}
	m.sock.close()
	m.sock = nil
	m.mfc.clear()
	m.logger.Infof("disabled")
	m.publish("enabled", false)
}

// Add registers group as having a Thread listener. Preconditions:
// group must not already be registered (double-add is a caller bug,
// asserted rather than reported as a runtime error, matching spec.md
// §4.C). While enabled, any blocked Backbone-origin MFC entries for
// group are unblocked (forwarded to Thread).
func (m *Manager) Add(group ip6.Address) {
	m.listeners.add(group)
	m.logger.Infof("add listener %s", group)
	if !m.Enabled() {
		return
	}
	m.unblockInbound(group)
}

// Remove unregisters group. Preconditions: group must currently be
// registered. While enabled, all Backbone-origin MFC entries for group
// are deleted from both the kernel and the in-memory cache.
func (m *Manager) Remove(group ip6.Address) {
	m.listeners.remove(group)
	m.logger.Infof("remove listener %s", group)
	if !m.Enabled() {
		return
	}
	m.removeInbound(group)
}

// Prepare adds the router socket's file descriptor to fds if enabled,
// returning the new maxFD (unchanged if disabled or if fd is already
// <= maxFD). Mirrors UpdateFdSet: it never arms a timer, since expiry
// is amortized onto add_mfc.
func (m *Manager) Prepare(fds *FdSet, maxFD int) int {
	if !m.Enabled() {
		return maxFD
	}
	fd := m.sock.fd()
	fds.Set(fd)
	if fd > maxFD {
		return fd
	}
	return maxFD
}

// Process reads and handles exactly one pending kernel message if the
// router socket is readable. It is a no-op if disabled or if the
// socket is not among the ready descriptors.
func (m *Manager) Process(fds *FdSet) error {
	if !m.Enabled() {
		return nil
	}
	if !fds.IsSet(m.sock.fd()) {
		return nil
	}
	u, ok, err := m.sock.recvUpcall()
	if err != nil {
		m.logger.Errorf("process: %v", err)
		return err
	}
	if !ok {
		return nil
	}
	return m.addMulticastForwardingCache(u.Src, u.Group, u.Iif)
}

// addMulticastForwardingCache installs (or overwrites) an MFC entry for
// (src, group) learned on iif, after first running the expiry sweep
// (spec.md §4.G — expiry runs at the start of every upcall that would
// grow the cache).
func (m *Manager) addMulticastForwardingCache(src, group ip6.Address, iif MifIndex) error {
	m.expire(m.now())

	oif, err := forwardMif(iif, group, m.listeners)
	if err != nil {
		m.logger.Errorf("add route: invalid iif %s", iif)
		return err
	}

	route := MulticastRoute{Src: src, Group: group}
	if err := m.sock.installMFC(route, iif, oif); err != nil {
		m.logger.Errorf("add route %s: install failed: %v", route, err)
		return err
	}

	m.mfc.insert(route, newRouteInfo(iif, oif, m.now()))
	m.logger.Infof("add route %s iif=%s oif=%s", route, iif, oif)
	m.publish("mfc.count", m.mfc.len())
	m.dump()
	return nil
}

// unblockInbound rewrites every Backbone-origin, currently-blocked MFC
// entry for group to forward to Thread. Called when group gains its
// first (or another) Thread listener.
func (m *Manager) unblockInbound(group ip6.Address) {
	for _, route := range m.mfc.sortedKeys() {
		info, ok := m.mfc.get(route)
		if !ok || info.Iif != MifBackbone || info.Oif == MifThread || route.Group != group {
			continue
		}
		if err := m.sock.installMFC(route, info.Iif, MifThread); err != nil {
			m.logger.Errorf("unblock %s: %v", route, err)
			continue
		}
		info.Oif = MifThread
		m.logger.Infof("unblock %s iif=%s oif=Thread", route, info.Iif)
	}
	m.dump()
}

// removeInbound deletes every Backbone-origin MFC entry for group from
// both the kernel and the cache.
//
// The original C++ implementation (RemoveInboundMulticastForwardingCache)
// unconditionally clears the *entire* MFC after this loop, which a
// strict reading of the invariants ("mfc entries unrelated to the
// removed group are unaffected by Remove") suggests is a bug rather
// than intent. This implementation preserves only the targeted delete
// and does not clear unrelated entries; see DESIGN.md.
func (m *Manager) removeInbound(group ip6.Address) {
	for _, route := range m.mfc.sortedKeys() {
		info, ok := m.mfc.get(route)
		if !ok || info.Iif != MifBackbone || route.Group != group {
			continue
		}
		if err := m.sock.deleteMFC(route, info.Iif); err != nil && !isNotExist(err) {
			m.logger.Errorf("remove %s: %v", route, err)
			continue
		}
		m.mfc.erase(route)
		m.logger.Infof("remove route %s", route)
	}
	m.publish("mfc.count", m.mfc.len())
	m.dump()
}

// dump logs the current MFC contents at debug level, mirroring
// DumpMulticastForwardingCache.
func (m *Manager) dump() {
	keys := m.mfc.sortedKeys()
	m.logf("==== MFC %d entries ====", len(keys))
	for _, route := range keys {
		info, ok := m.mfc.get(route)
		if !ok {
			continue
		}
		m.logf("%s %s -> %s", info.Iif, route, info.Oif)
	}
}
