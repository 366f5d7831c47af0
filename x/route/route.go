// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	moovhttp "github.com/moov-io/base/http"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	// Prometheus Metrics
	Histogram = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route", "code"})
)

type Responder struct {
	XRequestID string

	logger log.Logger

	request *http.Request
	span    opentracing.Span

	writer *responseWriter
}

func NewResponder(logger log.Logger, w http.ResponseWriter, r *http.Request) *Responder {
	resp := &Responder{
		XRequestID: moovhttp.GetRequestID(r),
		logger:     logger,
		request:    r,
		writer: &responseWriter{
			ResponseWriter: w,
			route:          routeName(r),
			start:          time.Now(),
		},
	}
	resp.span = resp.Span()
	return resp
}

func (r *Responder) Log(kvpairs ...interface{}) {
	if r == nil || r.logger == nil {
		return
	}
	var args = []interface{}{
		"requestID", r.XRequestID,
	}
	args = append(args, kvpairs...)
	r.logger.Log(args...)
}

func (r *Responder) Respond(fn func(http.ResponseWriter)) {
	if r == nil {
		return
	}
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	fn(r.writer)
	r.finish()
}

func (r *Responder) Problem(err error) {
	if r == nil {
		return
	}
	r.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	moovhttp.Problem(r.writer, err)
	r.finish()
}

func (r *Responder) finish() {
	code := r.writer.code
	if code == 0 {
		code = http.StatusOK
	}
	if r.span != nil {
		ext.HTTPStatusCode.Set(r.span, uint16(code))
		r.span.Finish()
	}
	Histogram.With("route", r.writer.route, "code", fmt.Sprintf("%d", code)).Observe(time.Since(r.writer.start).Seconds())
}

// responseWriter remembers the status code written for metrics.
type responseWriter struct {
	http.ResponseWriter

	route string
	start time.Time
	code  int
}

func (w *responseWriter) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.code == 0 {
		w.code = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func routeName(r *http.Request) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(r.Method), CleanPath(r.URL.Path))
}

var baseIdRegex = regexp.MustCompile(`([a-f0-9]{40})`)

// CleanPath takes a URL path and formats it for Prometheus metrics
//
// This method replaces /'s with -'s and strips out moov/base.ID() values from URL path slugs.
func CleanPath(path string) string {
	parts := strings.Split(path, "/")
	var out []string
	for i := range parts {
		if parts[i] == "" || baseIdRegex.MatchString(parts[i]) {
			continue // assume it's a moov/base.ID() value
		}
		out = append(out, parts[i])
	}
	return strings.Join(out, "-")
}
