// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
)

// Events configures where verification status changes are published.
// Exactly one of InMem or Kafka should be set.
type Events struct {
	InMem *InMemEvents
	Kafka *KafkaEvents
}

func (cfg *Events) Validate() error {
	if cfg == nil {
		return nil
	}
	if cfg.InMem != nil && cfg.Kafka != nil {
		return errors.New("only one of inmem or kafka can be configured")
	}
	if cfg.InMem != nil && cfg.InMem.URL == "" {
		return errors.New("inmem: missing stream url")
	}
	if k := cfg.Kafka; k != nil {
		if len(k.Brokers) == 0 || k.Topic == "" {
			return errors.New("kafka: missing brokers or topic")
		}
	}
	return nil
}

type InMemEvents struct {
	URL string
}

type KafkaEvents struct {
	Brokers []string
	Topic   string
}
