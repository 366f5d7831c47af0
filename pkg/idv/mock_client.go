// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"context"
	"sync"

	"github.com/paywell/kycgate/pkg/client"
)

type MockClient struct {
	ConsumerResult    *client.ConsumerVerificationResult
	TransactionResult *client.ConsumerVerificationResult
	DocumentResult    *client.DocumentVerificationResult
	Device            *client.DeviceRisk
	VerificationID    string

	Err error

	mu          sync.Mutex
	Feedback    []client.FeedbackStatus
	SessionKeys []string
}

func (c *MockClient) VerifyConsumer(ctx context.Context, sessionKey string, consumer *client.Consumer) (*client.ConsumerVerificationResult, error) {
	c.recordSessionKey(sessionKey)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.ConsumerResult, nil
}

func (c *MockClient) VerifyTransaction(ctx context.Context, sessionKey string, consumer *client.Consumer, xfer *client.TransactionVerification) (*client.ConsumerVerificationResult, error) {
	c.recordSessionKey(sessionKey)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.TransactionResult, nil
}

func (c *MockClient) SubmitDocument(ctx context.Context, sessionKey string, upload *client.DocumentUpload) (string, error) {
	c.recordSessionKey(sessionKey)
	if c.Err != nil {
		return "", c.Err
	}
	return c.VerificationID, nil
}

func (c *MockClient) DocumentVerificationResult(ctx context.Context, verificationID string) (*client.DocumentVerificationResult, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.DocumentResult, nil
}

func (c *MockClient) DeviceRisk(ctx context.Context, sessionKey string) (*client.DeviceRisk, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Device, nil
}

func (c *MockClient) ConsumerFeedback(ctx context.Context, sessionKey, consumerID string, status client.FeedbackStatus) {
	c.recordFeedback(status)
}

func (c *MockClient) DocumentFeedback(ctx context.Context, verificationID string, status client.FeedbackStatus) {
	c.recordFeedback(status)
}

func (c *MockClient) TransactionFeedback(ctx context.Context, sessionKey, transactionID string, status client.FeedbackStatus) {
	c.recordFeedback(status)
}

func (c *MockClient) recordFeedback(status client.FeedbackStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Feedback = append(c.Feedback, status)
}

func (c *MockClient) recordSessionKey(sessionKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SessionKeys = append(c.SessionKeys, sessionKey)
}
