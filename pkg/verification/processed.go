// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package verification

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultProcessedEvents is how many webhook event IDs are remembered.
const DefaultProcessedEvents = 10000

// EventLog remembers webhook events which were handled. Events which failed are
// never marked, so the provider's retry is processed again.
type EventLog interface {
	Processed(eventID string) bool
	MarkProcessed(eventID string)
}

type lruEventLog struct {
	cache *lru.Cache
}

// NewEventLog keeps the most recent size event IDs in memory.
func NewEventLog(size int) (EventLog, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("webhook event log: %v", err)
	}
	return &lruEventLog{cache: cache}, nil
}

func (l *lruEventLog) Processed(eventID string) bool {
	return l.cache.Contains(eventID)
}

func (l *lruEventLog) MarkProcessed(eventID string) {
	l.cache.Add(eventID, struct{}{})
}
