// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command otbr-mrmd runs the Multicast Routing Manager standalone: it
// opens the Linux MRT6 router socket between a Thread interface and a
// Backbone interface, and services kernel upcalls with select(2) until
// killed.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	redigo "github.com/garyburd/redigo/redis"
	platlog "github.com/platinasystems/log"
	"golang.org/x/sys/unix"

	"github.com/openthread/otbr/pkg/ip6"
	"github.com/openthread/otbr/pkg/mrm"
)

func main() {
	threadIf := flag.String("thread-if", "wpan0", "Thread network interface name")
	backboneIf := flag.String("backbone-if", "eth0", "Backbone LAN interface name")
	publish := flag.Bool("publish", true, "publish state transitions to redis")
	redisAddr := flag.String("redis-addr", "127.0.0.1:6379", "redis server address")
	dump := flag.Bool("dump", false, "subscribe to backbone.multicast.* and print updates instead of running the manager")
	flag.Parse()

	if *dump {
		if err := subscribe(*redisAddr); err != nil {
			platlog.Printf("err", "otbr-mrmd: dump: %v", err)
			os.Exit(1)
		}
		return
	}

	pub, err := newPublisher(*publish)
	if err != nil {
		platlog.Printf("err", "otbr-mrmd: redis publisher: %v", err)
		os.Exit(1)
	}

	m := mrm.New(mrm.Config{
		ThreadInterface:   *threadIf,
		BackboneInterface: *backboneIf,
		Publisher:         pub,
	})

	if err := m.Enable(); err != nil {
		platlog.Printf("err", "otbr-mrmd: enable: %v", err)
		os.Exit(1)
	}
	defer m.Disable()

	for _, group := range initialListeners() {
		m.Add(group)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(m, sig); err != nil {
		platlog.Printf("err", "otbr-mrmd: %v", err)
		os.Exit(1)
	}
}

// serve runs the select(2) loop that drives Manager.Prepare/Process
// until sig fires.
func serve(m *mrm.Manager, sig <-chan os.Signal) error {
	for {
		select {
		case <-sig:
			return nil
		default:
		}

		var fds mrm.FdSet
		maxFD := m.Prepare(&fds, -1)
		if maxFD < 0 {
			return fmt.Errorf("otbr-mrmd: manager not enabled")
		}

		tv := unix.Timeval{Sec: 1}
		n, err := unix.Select(maxFD+1, fds.Sys(), nil, nil, &tv)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("select: %w", err)
		}
		if n == 0 {
			continue
		}
		if err := m.Process(&fds); err != nil {
			platlog.Printf("warn", "otbr-mrmd: process: %v", err)
		}
	}
}

// newPublisher optionally constructs the redis-backed Publisher, the
// way every other corpus daemon does: absence of a running redis is
// not fatal to the daemon, only to publication.
func newPublisher(enabled bool) (mrm.Publisher, error) {
	if !enabled {
		return nil, nil
	}
	pub, err := mrm.NewRedisPublisher()
	if err != nil {
		platlog.Printf("warn", "otbr-mrmd: redis unavailable, continuing without publication: %v", err)
		return nil, nil
	}
	return pub, nil
}

// subscribe prints backbone.multicast.* status updates as they are
// published, mirroring goes/cmd/subscribe's use of redigo's PSUBSCRIBE
// to watch a daemon's redis.Publisher output live.
func subscribe(addr string) error {
	conn, err := redigo.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	psc := redigo.PubSubConn{Conn: conn}
	if err := psc.PSubscribe("backbone.multicast.*"); err != nil {
		return fmt.Errorf("psubscribe: %w", err)
	}
	for {
		switch v := psc.Receive().(type) {
		case redigo.PMessage:
			fmt.Printf("%s: %s\n", v.Channel, v.Data)
		case redigo.Subscription:
			if v.Count == 0 {
				return nil
			}
		case error:
			return v
		}
	}
}

// initialListeners is a placeholder seam for the Thread stack's own
// Multicast Listener Registration table; a full border-router build
// wires this to the OpenThread control-plane API instead of a static
// list.
func initialListeners() []ip6.Address {
	return nil
}
