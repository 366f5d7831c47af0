// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
)

type Tracing struct {
	ServiceName string

	// SampleRate is the fraction of traces recorded. Zero or one records every trace.
	SampleRate float64
}

func (cfg *Tracing) Validate() error {
	if cfg == nil {
		return nil
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("sample rate %v outside of [0, 1]", cfg.SampleRate)
	}
	return nil
}
