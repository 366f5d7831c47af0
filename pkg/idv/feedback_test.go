// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/paywell/kycgate/pkg/client"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type feedbackRecorder struct {
	mu       sync.Mutex
	requests []feedbackRequest
}

func (rec *feedbackRecorder) route(status int) func(*mux.Router) {
	return func(r *mux.Router) {
		r.Methods("POST").Path("/v1/feedbacks").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req feedbackRequest
			json.NewDecoder(r.Body).Decode(&req)

			rec.mu.Lock()
			rec.requests = append(rec.requests, req)
			rec.mu.Unlock()

			writeJSON(w, status, `{}`)
		})
	}
}

func TestFeedback(t *testing.T) {
	rec := &feedbackRecorder{}
	c, server := newProviderWithServer(t, rec.route(http.StatusCreated))
	defer server.Close()

	ctx := context.Background()
	c.ConsumerFeedback(ctx, "sess-1", "consumer-1", client.FEEDBACK_APPROVED)
	c.DocumentFeedback(ctx, "ver-1", client.FEEDBACK_DECLINED)
	c.TransactionFeedback(ctx, "sess-2", "xfer-1", client.FEEDBACK_APPROVED)

	require.Len(t, rec.requests, 3)

	require.Equal(t, "onboarding", rec.requests[0].Type)
	require.Equal(t, "approved", rec.requests[0].Status)
	require.Equal(t, "consumer-1", rec.requests[0].CustomerID)

	require.Equal(t, "document", rec.requests[1].Type)
	require.Equal(t, "declined", rec.requests[1].Status)
	require.Equal(t, "ver-1", rec.requests[1].VerificationID)

	require.Equal(t, "settlement", rec.requests[2].Type)
	require.Equal(t, "xfer-1", rec.requests[2].TransactionID)
}

func TestFeedback__neverFails(t *testing.T) {
	rec := &feedbackRecorder{}
	c, server := newProviderWithServer(t, rec.route(http.StatusInternalServerError))

	ctx := context.Background()
	c.ConsumerFeedback(ctx, "sess-1", "consumer-1", client.FEEDBACK_APPROVED)
	c.DocumentFeedback(ctx, "ver-1", "MAYBE")
	require.Len(t, rec.requests, 1) // unknown status never leaves

	server.Close()
	c.TransactionFeedback(ctx, "sess-2", "xfer-1", client.FEEDBACK_DECLINED)
	require.Len(t, rec.requests, 1)
}

func TestFeedback__validationError(t *testing.T) {
	rec := &feedbackRecorder{}
	c, server := newProviderWithServer(t, rec.route(http.StatusUnprocessableEntity))
	defer server.Close()

	ctx := context.Background()
	c.ConsumerFeedback(ctx, "sess-1", "consumer-1", client.FEEDBACK_DECLINED)
	c.DocumentFeedback(ctx, "ver-1", client.FEEDBACK_APPROVED)
	c.TransactionFeedback(ctx, "sess-1", "xfer-1", client.FEEDBACK_DECLINED)

	require.Len(t, rec.requests, 3)
	require.Equal(t, "declined", rec.requests[0].Status)
}
