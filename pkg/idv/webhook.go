// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
)

type WebhookEventType string

const (
	CaseStatusChange             WebhookEventType = "case_status_change"
	DocumentVerificationFinished WebhookEventType = "document_verification"
)

// maxWebhookSize bounds how much of a webhook body is read.
const maxWebhookSize = 1 << 20

// WebhookEvent is the envelope of every webhook the provider sends. Data is
// decoded once the type is known.
type WebhookEvent struct {
	ID        string           `json:"id"`
	Type      WebhookEventType `json:"type"`
	Timestamp string           `json:"timestamp,omitempty"`
	Data      json.RawMessage  `json:"data"`
}

// ReadWebhookEvent decodes a webhook envelope from r.
func ReadWebhookEvent(r io.Reader) (*WebhookEvent, error) {
	bs, err := ioutil.ReadAll(io.LimitReader(r, maxWebhookSize))
	if err != nil {
		return nil, fmt.Errorf("reading webhook: %v", err)
	}
	var event WebhookEvent
	if err := json.Unmarshal(bs, &event); err != nil {
		return nil, fmt.Errorf("decoding webhook: %v", err)
	}
	if event.ID == "" || event.Type == "" {
		return nil, errors.New("webhook is missing id or type")
	}
	if len(event.Data) == 0 {
		return nil, fmt.Errorf("webhook %s has no data", event.ID)
	}
	return &event, nil
}

// CaseNotification is the data of a case_status_change webhook.
type CaseNotification struct {
	Action CaseActionDetail `json:"action"`
	Case   CaseDetail       `json:"case"`
}

type CaseActionDetail struct {
	Source string     `json:"source,omitempty"`
	Value  CaseAction `json:"value,omitempty"`
}

type CaseDetail struct {
	SessionKey    string     `json:"sessionKey"`
	CustomerID    string     `json:"customerId"`
	TransactionID string     `json:"transactionId,omitempty"`
	Checkpoint    string     `json:"checkpoint,omitempty"`
	Status        CaseStatus `json:"status"`
}

func (e *WebhookEvent) CaseNotification() (*CaseNotification, error) {
	if e.Type != CaseStatusChange {
		return nil, fmt.Errorf("webhook %s is a %s event", e.ID, e.Type)
	}
	var n CaseNotification
	if err := json.Unmarshal(e.Data, &n); err != nil {
		return nil, fmt.Errorf("decoding case notification %s: %v", e.ID, err)
	}
	if n.Case.CustomerID == "" && n.Case.SessionKey == "" {
		return nil, fmt.Errorf("case notification %s has no customer or session", e.ID)
	}
	return &n, nil
}

func (e *WebhookEvent) DocumentVerification() (*DocumentVerification, error) {
	if e.Type != DocumentVerificationFinished {
		return nil, fmt.Errorf("webhook %s is a %s event", e.ID, e.Type)
	}
	var doc DocumentVerification
	if err := json.Unmarshal(e.Data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document verification %s: %v", e.ID, err)
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("document verification %s has no id", e.ID)
	}
	return &doc, nil
}
