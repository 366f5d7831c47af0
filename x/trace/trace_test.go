// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"testing"

	"github.com/paywell/kycgate/pkg/config"

	"github.com/go-kit/kit/log"
)

func TestNewTracer(t *testing.T) {
	cases := []*config.Tracing{
		nil,
		{ServiceName: "kycgate-test"},
		{ServiceName: "kycgate-test", SampleRate: 0.5},
		{SampleRate: 1.0},
	}
	for i := range cases {
		tracer, closer, err := NewTracer(log.NewNopLogger(), cases[i])
		if err != nil {
			t.Fatalf("%#v: %v", cases[i], err)
		}
		if tracer == nil {
			t.Fatalf("%#v: nil Tracer", cases[i])
		}
		closer.Close()
	}
}

func TestJaegerLogger(t *testing.T) {
	logger := &jaegerLogger{inner: log.NewNopLogger()}
	logger.Error("bad thing")
	logger.Infof("reporting %d spans", 2)
}
