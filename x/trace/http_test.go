// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package trace

import (
	"net/http"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/uber/jaeger-client-go"
)

func TestDecorateHttpRequest(t *testing.T) {
	tracer, closer, err := NewConstantTracer(log.NewNopLogger(), "http-test")
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	span := tracer.StartSpan("idv-verify-consumer")
	defer span.Finish()

	req, _ := http.NewRequest("POST", "/v1/customers", nil)
	req = DecorateHttpRequest(req, span)

	if v := req.Header.Get(jaeger.TraceContextHeaderName); v == "" {
		t.Errorf("missing trace header: %#v", req.Header)
	}
}

func TestFromRequest(t *testing.T) {
	_, closer, err := NewConstantTracer(log.NewNopLogger(), "http-test")
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	req, _ := http.NewRequest("POST", "/webhooks/idv", nil)

	// no incoming trace header, so expect no header
	span := FromRequest("idv-webhook", req)
	if span == nil {
		t.Fatal("nil Span")
	}
	if v := req.Header.Get(jaeger.TraceContextHeaderName); v != "" {
		t.Errorf("unexpected trace header: %#v", req.Header)
	}

	// even with an empty tracer expect requests can be decorated
	req = DecorateHttpRequest(req, FromRequest("idv-webhook", req))
	if v := req.Header.Get(jaeger.TraceContextHeaderName); v == "" {
		t.Errorf("expected trace header: %#v", req.Header)
	}
}
