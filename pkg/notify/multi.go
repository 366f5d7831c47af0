// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package notify

import (
	"fmt"

	"github.com/paywell/kycgate/pkg/config"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// MultiSender delivers each Message to every configured channel. A channel
// that fails doesn't stop the rest; the first error is returned.
type MultiSender struct {
	logger  log.Logger
	senders []Sender
}

func NewMultiSender(logger log.Logger, cfg *config.Notifications) (*MultiSender, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	ms := &MultiSender{logger: logger}
	if cfg == nil {
		return ms, nil
	}

	if cfg.Email != nil {
		mailer, err := NewEmail(cfg.Email)
		if err != nil {
			return nil, err
		}
		ms.senders = append(ms.senders, mailer)
	}
	if cfg.PagerDuty != nil {
		pd, err := NewPagerDuty(cfg.PagerDuty)
		if err != nil {
			return nil, err
		}
		ms.senders = append(ms.senders, pd)
	}
	if cfg.Slack != nil {
		sl, err := NewSlack(cfg.Slack)
		if err != nil {
			return nil, err
		}
		ms.senders = append(ms.senders, sl)
	}
	logger.Log("notify", fmt.Sprintf("sending verification alerts through %d channel(s)", len(ms.senders)))
	return ms, nil
}

func (ms *MultiSender) Info(msg *Message) error {
	return ms.deliver("info", msg, Sender.Info)
}

func (ms *MultiSender) Critical(msg *Message) error {
	return ms.deliver("critical", msg, Sender.Critical)
}

func (ms *MultiSender) deliver(severity string, msg *Message, send func(Sender, *Message) error) error {
	var firstError error
	for _, sender := range ms.senders {
		err := send(sender, msg)
		if err == nil {
			continue
		}
		level.Warn(ms.logger).Log(
			"notify", fmt.Sprintf("%T failed to send %s %s alert: %v", sender, severity, msg.Kind, err),
			"flow", msg.Flow,
			"consumerID", msg.ConsumerID,
		)
		if firstError == nil {
			firstError = err
		}
	}
	return firstError
}
