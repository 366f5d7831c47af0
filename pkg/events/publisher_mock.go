// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"sync"
)

type MockPublisher struct {
	Err error

	mu     sync.Mutex
	Events []Event
}

func (p *MockPublisher) Publish(_ context.Context, event Event) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}

func (p *MockPublisher) Shutdown(_ context.Context) error {
	return nil
}

// Published returns a copy of every event seen so far.
func (p *MockPublisher) Published() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.Events))
	copy(out, p.Events)
	return out
}
