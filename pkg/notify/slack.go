// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package notify

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/paywell/kycgate/pkg/config"

	"github.com/slack-go/slack"
)

type Slack struct {
	webhookURL string
	client     *http.Client
}

func NewSlack(cfg *config.Slack) (*Slack, error) {
	if cfg == nil || cfg.WebhookURL == "" {
		return nil, errors.New("slack: missing webhook url")
	}
	return &Slack{
		webhookURL: cfg.WebhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (s *Slack) Info(msg *Message) error {
	return s.send(":information_source: " + slackMessage(msg))
}

func (s *Slack) Critical(msg *Message) error {
	return s.send(":rotating_light: " + slackMessage(msg))
}

func slackMessage(msg *Message) string {
	out := msg.summary()
	if msg.Hostname != "" {
		out += " on " + msg.Hostname
	}
	if msg.Detail != "" {
		out += "\n> " + msg.Detail
	}
	return out
}

func (s *Slack) send(text string) error {
	err := slack.PostWebhookCustomHTTP(s.webhookURL, s.client, &slack.WebhookMessage{
		Text: text,
	})
	if err != nil {
		return fmt.Errorf("slack: %v", err)
	}
	return nil
}
