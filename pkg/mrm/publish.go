// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import (
	"fmt"

	"github.com/platinasystems/redis/publisher"
)

// Publisher mirrors the redis status-publication idiom used by the
// corpus's other stateful daemons (goes/cmd/tempd, goes/cmd/fspd): a
// key/value pair is rendered with Print and mirrored into a redis hash
// plus a pub/sub channel. Manager only depends on this narrow
// interface so it never requires a live redis server to run.
type Publisher interface {
	Print(args ...interface{})
}

// redisPublisher adapts *publisher.Publisher to Publisher.
type redisPublisher struct {
	pub *publisher.Publisher
}

// NewRedisPublisher opens a redis publisher for use as Config.Publisher,
// following the same construction the corpus's daemons use
// (publisher.New()).
func NewRedisPublisher() (Publisher, error) {
	pub, err := publisher.New()
	if err != nil {
		return nil, err
	}
	return redisPublisher{pub: pub}, nil
}

func (r redisPublisher) Print(args ...interface{}) {
	r.pub.Print(args...)
}

// publish renders key/value the way the corpus's daemons do:
// pub.Print(key, ": ", value). A nil publisher is a silent no-op.
func (m *Manager) publish(key string, value interface{}) {
	if m.pub == nil {
		return
	}
	m.pub.Print(fmt.Sprintf("backbone.multicast.%s", key), ": ", value)
}
