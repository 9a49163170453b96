// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import platlog "github.com/platinasystems/log"

// Logger is the leveled logging sink used by Manager for the state
// transitions, MFC dumps, and syscall failures spec.md §7 requires.
// The zero value of Config uses defaultLogger, which forwards to
// github.com/platinasystems/log the way every other daemon in the
// corpus does.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// defaultLogger adapts github.com/platinasystems/log's priority-tagged
// Printf convention (Printf("info", format, ...)) to the Logger
// interface.
type defaultLogger struct{}

func (defaultLogger) Debugf(format string, args ...interface{}) {
	platlog.Printf(append([]interface{}{"debug", format}, args...)...)
}

func (defaultLogger) Infof(format string, args ...interface{}) {
	platlog.Printf(append([]interface{}{"info", format}, args...)...)
}

func (defaultLogger) Warnf(format string, args ...interface{}) {
	platlog.Printf(append([]interface{}{"warn", format}, args...)...)
}

func (defaultLogger) Errorf(format string, args ...interface{}) {
	platlog.Printf(append([]interface{}{"err", format}, args...)...)
}

// logf is a convenience used by dump to emit debug-level MFC lines.
func (m *Manager) logf(format string, args ...interface{}) {
	m.logger.Debugf(format, args...)
}
