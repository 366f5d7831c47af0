// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"github.com/paywell/kycgate/x/trace"

	opentracing "github.com/opentracing/opentracing-go"
)

// Span starts a server span for the request, named like the metrics route.
func (r *Responder) Span() opentracing.Span {
	return trace.FromRequest(routeName(r.request), r.request)
}
