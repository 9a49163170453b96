// Copyright 2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrm

import "errors"

// ErrInvalidMIF is returned by the policy engine when asked to compute
// an output MIF for an input MIF that is neither Thread nor Backbone.
var ErrInvalidMIF = errors.New("mrm: iif must be Thread or Backbone")
