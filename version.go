// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package kycgate

// Version is the current release of kycgate, set at build time with
// -ldflags "-X github.com/paywell/kycgate.Version=v0.1.0"
var Version = "v0.1.0-dev"
