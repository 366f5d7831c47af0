// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package notify

import (
	"errors"
	"fmt"
	"os"

	"github.com/paywell/kycgate/pkg/config"

	"github.com/PagerDuty/go-pagerduty"
)

// manageEvent is replaced in tests
var manageEvent = pagerduty.ManageEvent

type PagerDuty struct {
	routingKey string
	hostname   string
}

func NewPagerDuty(cfg *config.PagerDuty) (*PagerDuty, error) {
	if cfg == nil || cfg.RoutingKey == "" {
		return nil, errors.New("pagerduty: missing routing key")
	}
	hostname, _ := os.Hostname()
	return &PagerDuty{
		routingKey: cfg.RoutingKey,
		hostname:   hostname,
	}, nil
}

func (pd *PagerDuty) Info(msg *Message) error {
	return pd.trigger("info", msg)
}

func (pd *PagerDuty) Critical(msg *Message) error {
	return pd.trigger("critical", msg)
}

func (pd *PagerDuty) trigger(severity string, msg *Message) error {
	source := msg.Hostname
	if source == "" {
		source = pd.hostname
	}
	event := pagerduty.V2Event{
		RoutingKey: pd.routingKey,
		Action:     "trigger",
		Payload: &pagerduty.V2Payload{
			Summary:   msg.summary(),
			Source:    source,
			Severity:  severity,
			Component: "kycgate",
			Group:     msg.Flow,
			Class:     string(msg.Kind),
			Details: map[string]string{
				"consumerID": msg.ConsumerID,
				"reference":  msg.Reference,
				"detail":     msg.Detail,
			},
		},
	}
	if _, err := manageEvent(event); err != nil {
		return fmt.Errorf("pagerduty: %v", err)
	}
	return nil
}
