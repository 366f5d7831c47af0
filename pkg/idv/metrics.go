// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"strconv"

	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	providerErrors = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "idv_provider_errors",
		Help: "Counter of errors returned by the identity verification provider",
	}, []string{"operation", "status"})

	providerDuration = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name:    "idv_provider_request_duration_seconds",
		Help:    "Histogram of request durations against the identity verification provider",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"operation"})

	feedbackFailures = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "idv_feedback_failures",
		Help: "Counter of feedback posts the provider did not accept",
	}, []string{"type"})
)

// trackError counts a failed provider call. A zero status means the request
// never got an HTTP response.
func trackError(operation string, status int) {
	code := "none"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	providerErrors.With("operation", operation, "status", code).Add(1)
}
