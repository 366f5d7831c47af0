// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"gocloud.dev/pubsub"
)

type streamPublisher struct {
	topic  *pubsub.Topic
	logger log.Logger
}

func createInmemPublisher(logger log.Logger, url string) (*streamPublisher, error) {
	topic, err := Topic(context.Background(), url)
	if err != nil {
		return nil, fmt.Errorf("events: opening %s: %v", url, err)
	}
	return &streamPublisher{topic: topic, logger: logger}, nil
}

func (pub *streamPublisher) Publish(ctx context.Context, event Event) error {
	if pub == nil || pub.topic == nil {
		return errors.New("events: nil topic")
	}
	msg, err := buildMessage(event)
	if err != nil {
		return err
	}
	if err := pub.topic.Send(ctx, msg); err != nil {
		return fmt.Errorf("events: sending %s event=%s: %v", event.Type, event.EventID, err)
	}
	if pub.logger != nil {
		level.Debug(pub.logger).Log("events", fmt.Sprintf("published %s event=%s", event.Type, event.EventID))
	}
	return nil
}

func (pub *streamPublisher) Shutdown(ctx context.Context) error {
	if pub == nil || pub.topic == nil {
		return nil
	}
	return pub.topic.Shutdown(ctx)
}

func buildMessage(event Event) (*pubsub.Message, error) {
	bs, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("events: encoding %s: %v", event.EventID, err)
	}
	return &pubsub.Message{
		Body: bs,
		Metadata: map[string]string{
			"eventID": event.EventID,
			"type":    string(event.Type),
		},
	}, nil
}
