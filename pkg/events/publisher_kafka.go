// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"errors"
	"fmt"

	"github.com/paywell/kycgate/pkg/config"

	"github.com/Shopify/sarama"
	"github.com/go-kit/kit/log"
	"gocloud.dev/pubsub/kafkapubsub"
)

func kafkaConfig() *sarama.Config {
	// kafkapubsub.MinimalConfig returns a minimal sarama.Config required for kafkapubsub
	cfg := kafkapubsub.MinimalConfig()
	cfg.ClientID = "kycgate"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	return cfg
}

func createKafkaPublisher(logger log.Logger, cfg *config.KafkaEvents) (*streamPublisher, error) {
	if cfg == nil {
		return nil, errors.New("nil Kafka config")
	}
	topic, err := KafkaTopic(cfg.Brokers, kafkaConfig(), cfg.Topic)
	if err != nil {
		return nil, fmt.Errorf("events: kafka topic %s: %v", cfg.Topic, err)
	}
	logger.Log("events", fmt.Sprintf("publishing to kafka topic %s", cfg.Topic))
	return &streamPublisher{topic: topic, logger: logger}, nil
}
