// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"context"
	"fmt"

	"github.com/paywell/kycgate/pkg/client"

	"github.com/go-kit/kit/log/level"
)

type feedbackRequest struct {
	Type           string `json:"type"`
	Status         string `json:"status"`
	SessionKey     string `json:"sessionKey,omitempty"`
	CustomerID     string `json:"customerId,omitempty"`
	VerificationID string `json:"verificationId,omitempty"`
	TransactionID  string `json:"transactionId,omitempty"`
}

var feedbackStatuses = map[client.FeedbackStatus]string{
	client.FEEDBACK_APPROVED: "approved",
	client.FEEDBACK_DECLINED: "declined",
}

func (c *provider) ConsumerFeedback(ctx context.Context, sessionKey, consumerID string, status client.FeedbackStatus) {
	c.sendFeedback(ctx, status, &feedbackRequest{
		Type:       "onboarding",
		SessionKey: sessionKey,
		CustomerID: consumerID,
	})
}

func (c *provider) DocumentFeedback(ctx context.Context, verificationID string, status client.FeedbackStatus) {
	c.sendFeedback(ctx, status, &feedbackRequest{
		Type:           "document",
		VerificationID: verificationID,
	})
}

func (c *provider) TransactionFeedback(ctx context.Context, sessionKey, transactionID string, status client.FeedbackStatus) {
	c.sendFeedback(ctx, status, &feedbackRequest{
		Type:          "settlement",
		SessionKey:    sessionKey,
		TransactionID: transactionID,
	})
}

// sendFeedback never fails. Problems are logged and counted.
func (c *provider) sendFeedback(ctx context.Context, status client.FeedbackStatus, req *feedbackRequest) {
	st, exists := feedbackStatuses[status]
	if !exists {
		feedbackFailures.With("type", req.Type).Add(1)
		level.Warn(c.logger).Log("idv", fmt.Sprintf("skipping %s feedback with unknown status %q", req.Type, status))
		return
	}
	req.Status = st

	operation := req.Type + "-feedback"
	resp, err := c.postJSON(ctx, operation, "/v1/feedbacks", req)
	if err != nil {
		feedbackFailures.With("type", req.Type).Add(1)
		level.Warn(c.logger).Log("idv", fmt.Sprintf("problem sending %s feedback: %v", req.Type, err))
		return
	}
	defer resp.Body.Close()

	if err := c.checkResponse(operation, resp); err != nil {
		feedbackFailures.With("type", req.Type).Add(1)
		level.Warn(c.logger).Log("idv", fmt.Sprintf("provider refused %s feedback: %v", req.Type, err))
	}
}
