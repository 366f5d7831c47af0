// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"

	"github.com/go-kit/kit/log"
)

type loggingPublisher struct {
	logger log.Logger
}

func (pub *loggingPublisher) Publish(_ context.Context, event Event) error {
	if pub.logger == nil {
		return nil
	}
	return pub.logger.Log(
		"events", "unpublished",
		"type", event.Type,
		"eventID", event.EventID,
		"consumerID", event.ConsumerID,
		"status", event.Status,
	)
}

func (pub *loggingPublisher) Shutdown(_ context.Context) error {
	return nil
}
