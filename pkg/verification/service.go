// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package verification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/paywell/kycgate/pkg/client"
	"github.com/paywell/kycgate/pkg/events"
	"github.com/paywell/kycgate/pkg/idv"
	"github.com/paywell/kycgate/pkg/notify"
	"github.com/paywell/kycgate/x/mask"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/moov-io/base"
)

// Service is what the orchestration layer calls to verify consumers, documents
// and transactions. Every status it resolves is also published as an event.
type Service struct {
	client    idv.Client
	publisher events.Publisher
	notifier  notify.Sender
	logger    log.Logger
	hostname  string
}

func NewService(logger log.Logger, client idv.Client, publisher events.Publisher, notifier notify.Sender) *Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	hostname, _ := os.Hostname()
	return &Service{
		client:    client,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
		hostname:  hostname,
	}
}

func (s *Service) VerifyConsumer(ctx context.Context, sessionKey string, consumer *client.Consumer) (*client.ConsumerVerificationResult, error) {
	if consumer == nil || consumer.ConsumerID == "" {
		return nil, errors.New("verify consumer: missing consumer")
	}
	sessionKey = newSessionKey(sessionKey)

	result, err := s.client.VerifyConsumer(ctx, sessionKey, consumer)
	if err != nil {
		return nil, s.failed("onboarding", consumer.ConsumerID, sessionKey, err)
	}
	if result.SessionKey == "" {
		result.SessionKey = sessionKey
	}
	verificationOutcomes.With("flow", "onboarding", "status", string(result.Status)).Add(1)
	s.logger.Log("verification", fmt.Sprintf("consumer=%s kyc status=%s", consumer.ConsumerID, result.Status), "riskLevel", result.IDVProviderRiskLevel)

	event := events.New(events.ConsumerVerification)
	event.SessionKey = sessionKey
	event.ConsumerID = consumer.ConsumerID
	event.Status = string(result.Status)
	event.RiskLevel = result.IDVProviderRiskLevel
	s.publish(ctx, event)

	return result, nil
}

func (s *Service) SubmitDocument(ctx context.Context, sessionKey string, upload *client.DocumentUpload) (string, error) {
	if upload == nil {
		return "", errors.New("submit document: missing upload")
	}
	sessionKey = newSessionKey(sessionKey)

	verificationID, err := s.client.SubmitDocument(ctx, sessionKey, upload)
	if err != nil {
		return "", s.failed("document", upload.ConsumerID, sessionKey, err)
	}
	s.logger.Log("verification", fmt.Sprintf("consumer=%s submitted %s document", upload.ConsumerID, upload.DocumentType), "verificationID", verificationID)

	event := events.New(events.DocumentVerification)
	event.SessionKey = sessionKey
	event.ConsumerID = upload.ConsumerID
	event.VerificationID = verificationID
	event.Status = string(client.DOCUMENT_PENDING)
	s.publish(ctx, event)

	return verificationID, nil
}

func (s *Service) DocumentVerificationResult(ctx context.Context, verificationID string) (*client.DocumentVerificationResult, error) {
	result, err := s.client.DocumentVerificationResult(ctx, verificationID)
	if err != nil {
		return nil, s.failed("document", "", verificationID, err)
	}
	verificationOutcomes.With("flow", "document", "status", string(result.Status)).Add(1)

	event := events.New(events.DocumentVerification)
	event.VerificationID = verificationID
	event.Status = string(result.Status)
	event.RiskLevel = result.RiskRating
	s.publish(ctx, event)

	return result, nil
}

// VerifyTransaction validates xfer and screens it for AML and fraud risk.
func (s *Service) VerifyTransaction(ctx context.Context, sessionKey string, consumer *client.Consumer, xfer *client.TransactionVerification) (*client.ConsumerVerificationResult, error) {
	if consumer == nil || consumer.ConsumerID == "" {
		return nil, errors.New("verify transaction: missing consumer")
	}
	if err := ValidateTransaction(xfer); err != nil {
		return nil, fmt.Errorf("verify transaction: %v", err)
	}
	sessionKey = newSessionKey(sessionKey)

	if xfer.WithdrawalDetails != nil {
		level.Debug(s.logger).Log("verification", fmt.Sprintf("transaction=%s withdrawal to account=%s", xfer.TransactionID, mask.AccountNumber(xfer.WithdrawalDetails.AccountNumber)))
	}

	result, err := s.client.VerifyTransaction(ctx, sessionKey, consumer, xfer)
	if err != nil {
		return nil, s.failed("transaction", consumer.ConsumerID, xfer.TransactionID, err)
	}
	if result.SessionKey == "" {
		result.SessionKey = sessionKey
	}
	verificationOutcomes.With("flow", "transaction", "status", string(result.Status)).Add(1)
	s.logger.Log("verification", fmt.Sprintf("transaction=%s status=%s wallet=%s", xfer.TransactionID, result.Status, result.WalletStatus))

	event := events.New(events.TransactionVerification)
	event.SessionKey = sessionKey
	event.ConsumerID = consumer.ConsumerID
	event.TransactionID = xfer.TransactionID
	event.Status = string(result.Status)
	event.WalletStatus = string(result.WalletStatus)
	event.RiskLevel = result.IDVProviderRiskLevel
	s.publish(ctx, event)

	return result, nil
}

func (s *Service) DeviceRisk(ctx context.Context, sessionKey string) (*client.DeviceRisk, error) {
	device, err := s.client.DeviceRisk(ctx, sessionKey)
	if err != nil {
		return nil, s.failed("device", "", sessionKey, err)
	}
	return device, nil
}

func (s *Service) ConsumerFeedback(ctx context.Context, sessionKey, consumerID string, status client.FeedbackStatus) {
	s.client.ConsumerFeedback(ctx, sessionKey, consumerID, status)
}

func (s *Service) DocumentFeedback(ctx context.Context, verificationID string, status client.FeedbackStatus) {
	s.client.DocumentFeedback(ctx, verificationID, status)
}

func (s *Service) TransactionFeedback(ctx context.Context, sessionKey, transactionID string, status client.FeedbackStatus) {
	s.client.TransactionFeedback(ctx, sessionKey, transactionID, status)
}

// HandleCaseNotification resolves a case_status_change webhook. A provisional
// resolution is logged, counted and raised as an Info notification.
func (s *Service) HandleCaseNotification(ctx context.Context, eventID string, n *idv.CaseNotification) idv.CaseResolution {
	res := idv.ResolveCase(n)
	verificationOutcomes.With("flow", "case", "status", string(res.Status)).Add(1)

	if res.Provisional {
		provisionalResolutions.With("checkpoint", res.Checkpoint).Add(1)
		level.Warn(s.logger).Log("verification", fmt.Sprintf("case webhook=%s for consumer=%s resolved provisionally: %s", eventID, res.ConsumerID, res.Reason))

		s.notify(false, &notify.Message{
			Kind:       notify.ProvisionalResolution,
			Flow:       "case",
			ConsumerID: res.ConsumerID,
			Reference:  eventID,
			Detail:     res.Reason,
		})
	} else {
		s.logger.Log("verification", fmt.Sprintf("case webhook=%s consumer=%s status=%s", eventID, res.ConsumerID, res.Status))
	}

	event := events.New(events.CaseResolution)
	event.SessionKey = res.SessionKey
	event.ConsumerID = res.ConsumerID
	event.TransactionID = res.TransactionID
	event.Status = string(res.Status)
	event.Provisional = res.Provisional
	event.Reason = res.Reason
	s.publish(ctx, event)

	return res
}

// HandleDocumentNotification resolves a document_verification webhook.
func (s *Service) HandleDocumentNotification(ctx context.Context, eventID string, doc *idv.DocumentVerification) (*client.DocumentVerificationResult, error) {
	result, err := idv.DocumentStatus(doc)
	if err != nil {
		var consumerID string
		if doc != nil {
			consumerID = doc.CustomerID
		}
		return nil, s.failed("document", consumerID, eventID, err)
	}
	verificationOutcomes.With("flow", "document", "status", string(result.Status)).Add(1)
	s.logger.Log("verification", fmt.Sprintf("document webhook=%s verification=%s status=%s", eventID, doc.ID, result.Status))

	event := events.New(events.DocumentVerification)
	event.SessionKey = doc.SessionKey
	event.ConsumerID = doc.CustomerID
	event.VerificationID = doc.ID
	event.Status = string(result.Status)
	event.RiskLevel = result.RiskRating
	s.publish(ctx, event)

	return result, nil
}

// newSessionKey returns sessionKey, or a fresh ID when it's empty.
func newSessionKey(sessionKey string) string {
	if strings.TrimSpace(sessionKey) == "" {
		return base.ID()
	}
	return sessionKey
}

// failed logs err and raises a Critical notification when the provider sent
// something we can't map.
func (s *Service) failed(flow, consumerID, reference string, err error) error {
	if idv.IsFatal(err) {
		unrecognizedValues.With("flow", flow).Add(1)
		level.Error(s.logger).Log("verification", fmt.Sprintf("%s for consumer=%s: %v", flow, consumerID, err), "reference", reference)

		s.notify(true, &notify.Message{
			Kind:       notify.UnrecognizedValue,
			Flow:       flow,
			ConsumerID: consumerID,
			Reference:  reference,
			Detail:     err.Error(),
		})
		return err
	}
	if !errors.Is(err, idv.ErrNotFound) {
		level.Warn(s.logger).Log("verification", fmt.Sprintf("%s for consumer=%s: %v", flow, consumerID, err), "reference", reference)
	}
	return err
}

func (s *Service) notify(critical bool, msg *notify.Message) {
	if s.notifier == nil {
		return
	}
	msg.Hostname = s.hostname

	var err error
	if critical {
		err = s.notifier.Critical(msg)
	} else {
		err = s.notifier.Info(msg)
	}
	if err != nil {
		level.Error(s.logger).Log("verification", fmt.Sprintf("problem sending %s notification: %v", msg.Kind, err))
	}
}

// publish never fails the verification, the result is returned to the caller either way.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		publishFailures.With("type", string(event.Type)).Add(1)
		level.Error(s.logger).Log("verification", fmt.Sprintf("problem publishing %s event=%s: %v", event.Type, event.EventID, err))
	}
}
