// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package events publishes verification status changes so the orchestration
// layer can persist them. Events are JSON bodies sent over gocloud.dev/pubsub,
// either to an in-memory topic or to Kafka.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/paywell/kycgate/pkg/config"

	"github.com/go-kit/kit/log"
	"github.com/moov-io/base"
)

type Type string

const (
	ConsumerVerification    Type = "consumer.verification"
	DocumentVerification    Type = "document.verification"
	TransactionVerification Type = "transaction.verification"
	CaseResolution          Type = "case.resolution"
)

// Event is one resolved status. Fields which don't apply to the Type are empty.
type Event struct {
	EventID string `json:"eventID"`
	Type    Type   `json:"type"`

	SessionKey     string `json:"sessionKey,omitempty"`
	ConsumerID     string `json:"consumerID,omitempty"`
	TransactionID  string `json:"transactionID,omitempty"`
	VerificationID string `json:"verificationID,omitempty"`

	Status       string `json:"status"`
	WalletStatus string `json:"walletStatus,omitempty"`
	RiskLevel    string `json:"riskLevel,omitempty"`

	// Provisional marks a case resolution that fell back to PENDING
	Provisional bool   `json:"provisional,omitempty"`
	Reason      string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// New returns an Event of type t with a fresh ID and timestamp.
func New(t Type) Event {
	return Event{
		EventID:   base.ID(),
		Type:      t,
		CreatedAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Shutdown(ctx context.Context) error
}

// NewPublisher returns the Publisher described by cfg. Without any config
// events are only logged.
func NewPublisher(logger log.Logger, cfg *config.Events) (Publisher, error) {
	if cfg == nil {
		return &loggingPublisher{logger: logger}, nil
	}
	if cfg.InMem != nil {
		return createInmemPublisher(logger, cfg.InMem.URL)
	}
	if cfg.Kafka != nil {
		return createKafkaPublisher(logger, cfg.Kafka)
	}
	return nil, errors.New("unknown Events config")
}
