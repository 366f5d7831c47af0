// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"

	"github.com/Shopify/sarama"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/kafkapubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

// Topic opens a topic by URL, such as mem://kycgate
func Topic(ctx context.Context, url string) (*pubsub.Topic, error) {
	return pubsub.OpenTopic(ctx, url)
}

// Subscription opens a subscription by URL. Consumers of mem:// topics must
// subscribe before events are published.
func Subscription(ctx context.Context, url string) (*pubsub.Subscription, error) {
	return pubsub.OpenSubscription(ctx, url)
}

// KafkaTopic creates a pubsub.Topic that sends to a Kafka topic. It uses a sarama.SyncProducer to send messages.
// Config.Producer.Return.Successes must be set to true.
func KafkaTopic(brokers []string, config *sarama.Config, topicName string) (*pubsub.Topic, error) {
	return kafkapubsub.OpenTopic(brokers, config, topicName, nil)
}
