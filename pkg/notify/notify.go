// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package notify

import (
	"fmt"
)

// Kind is what the notification is about.
type Kind string

const (
	// UnrecognizedValue means the provider sent a value outside its documented
	// enumerations and a verification could not be mapped.
	UnrecognizedValue Kind = "unrecognized-value"

	// ProvisionalResolution means a case webhook fell back to PENDING.
	ProvisionalResolution Kind = "provisional-resolution"
)

type Message struct {
	Kind       Kind
	Flow       string // e.g. onboarding, document, transaction, case
	ConsumerID string
	Reference  string // verification, transaction or webhook event ID
	Detail     string
	Hostname   string
}

func (msg *Message) summary() string {
	out := fmt.Sprintf("%s during %s", msg.Kind, msg.Flow)
	if msg.ConsumerID != "" {
		out += fmt.Sprintf(" for consumer %s", msg.ConsumerID)
	}
	if msg.Reference != "" {
		out += fmt.Sprintf(" (%s)", msg.Reference)
	}
	return out
}

type Sender interface {
	Info(msg *Message) error
	Critical(msg *Message) error
}
