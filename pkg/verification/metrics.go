// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package verification

import (
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	verificationOutcomes = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "verification_outcomes",
		Help: "Counter of mapped verification statuses",
	}, []string{"flow", "status"})

	unrecognizedValues = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "verification_unrecognized_values",
		Help: "Counter of provider values outside the documented enumerations",
	}, []string{"flow"})

	provisionalResolutions = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "verification_provisional_case_resolutions",
		Help: "Counter of case webhooks which fell back to PENDING",
	}, []string{"checkpoint"})

	publishFailures = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "verification_event_publish_failures",
		Help: "Counter of verification events which could not be published",
	}, []string{"type"})

	webhooksReceived = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "verification_webhooks_received",
		Help: "Counter of provider webhooks by type and outcome",
	}, []string{"type", "outcome"})
)
