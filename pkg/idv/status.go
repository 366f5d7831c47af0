// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"fmt"
	"strings"

	"github.com/paywell/kycgate/pkg/client"
)

// Every mapping below is a lookup table. A provider value missing from its
// table is an UnrecognizedError, never a silent default.

var consumerStatuses = map[RiskLevel]client.KYCStatus{
	VeryHighRisk: client.KYC_REJECTED,
	HighRisk:     client.KYC_PENDING,
	MediumRisk:   client.KYC_APPROVED,
	LowRisk:      client.KYC_APPROVED,
}

// ConsumerStatus maps a consumer's KYC risk level onto a KYCStatus.
func ConsumerStatus(level RiskLevel) (client.KYCStatus, error) {
	if st, exists := consumerStatuses[level]; exists {
		return st, nil
	}
	return "", unrecognized("consumer", "risk level", level)
}

type transactionOutcome struct {
	status client.KYCStatus
	wallet client.WalletStatus
}

var transactionOutcomes = map[RiskLevel]transactionOutcome{
	VeryHighRisk: {client.KYC_REJECTED, client.WALLET_REJECTED},
	HighRisk:     {client.KYC_PENDING, client.WALLET_FLAGGED},
	MediumRisk:   {client.KYC_APPROVED, client.WALLET_APPROVED},
	LowRisk:      {client.KYC_APPROVED, client.WALLET_APPROVED},
}

// TransactionStatus maps a transaction's AML/fraud risk level onto the
// transaction verdict and the wallet status it implies.
func TransactionStatus(level RiskLevel) (client.KYCStatus, client.WalletStatus, error) {
	if out, exists := transactionOutcomes[level]; exists {
		return out.status, out.wallet, nil
	}
	return "", "", unrecognized("transaction", "risk level", level)
}

var completeDocumentStatuses = map[RiskLevel]client.DocumentVerificationStatus{
	UnknownRisk: client.DOCUMENT_PENDING,
	HighRisk:    client.DOCUMENT_PENDING,
	MediumRisk:  client.DOCUMENT_APPROVED,
	LowRisk:     client.DOCUMENT_APPROVED,
}

// documentErrorStatuses is checked in order, the first code present wins.
var documentErrorStatuses = []struct {
	code   DocumentErrorCode
	status client.DocumentVerificationStatus
}{
	{DocumentUnrecognizable, client.DOCUMENT_REJECTED_DOCUMENT_POOR_QUALITY},
	{DocumentBadSizeOrType, client.DOCUMENT_REJECTED_DOCUMENT_INVALID_SIZE_OR_TYPE},
	{DocumentRequiresRecapture, client.DOCUMENT_REJECTED_DOCUMENT_REQUIRES_RECAPTURE},
}

// DocumentStatus maps the provider's processing state of a document onto a
// DocumentVerificationResult.
func DocumentStatus(doc *DocumentVerification) (*client.DocumentVerificationResult, error) {
	if doc == nil {
		return nil, unrecognized("document", "verification", "<nil>")
	}
	result := &client.DocumentVerificationResult{}
	if lvl := doc.riskLevel(); lvl != "" {
		result.RiskRating = strings.ToLower(string(lvl))
	}

	switch doc.Status {
	case DocumentProcessingPending, DocumentProcessingProcessing:
		result.Status = client.DOCUMENT_PENDING

	case DocumentProcessingComplete:
		st, exists := completeDocumentStatuses[doc.riskLevel()]
		if !exists {
			return nil, unrecognized("document", "risk level", doc.riskLevel())
		}
		result.Status = st

	case DocumentProcessingError:
		st, err := documentErrorStatus(doc.ErrorCodes)
		if err != nil {
			return nil, err
		}
		result.Status = st

	case DocumentProcessingRejected:
		result.Status = client.DOCUMENT_REJECTED

	default:
		return nil, unrecognized("document", "status", doc.Status)
	}
	return result, nil
}

func documentErrorStatus(codes []DocumentErrorCode) (client.DocumentVerificationStatus, error) {
	for _, candidate := range documentErrorStatuses {
		for i := range codes {
			if codes[i] == candidate.code {
				return candidate.status, nil
			}
		}
	}
	if len(codes) == 0 {
		return "", unrecognized("document", "error codes", "[]")
	}
	return "", unrecognized("document", "error codes", fmt.Sprintf("%v", codes))
}

// CaseResolution is the outcome of a case_status_change webhook.
type CaseResolution struct {
	SessionKey    string
	ConsumerID    string
	TransactionID string
	Checkpoint    string

	Status client.KYCStatus

	// Provisional is set when the case status or action was not one of the
	// documented values and Status fell back to PENDING.
	Provisional bool
	Reason      string
}

var knownCaseStatuses = map[CaseStatus]bool{
	CasePending:    true,
	CaseInProgress: true,
	CaseResolved:   true,
}

// ResolveCase maps a case notification onto a KYCStatus. Only a resolved case
// with an approve or decline action leaves PENDING.
func ResolveCase(n *CaseNotification) CaseResolution {
	if n == nil {
		return CaseResolution{
			Status:      client.KYC_PENDING,
			Provisional: true,
			Reason:      "empty case notification",
		}
	}
	res := CaseResolution{
		SessionKey:    n.Case.SessionKey,
		ConsumerID:    n.Case.CustomerID,
		TransactionID: n.Case.TransactionID,
		Checkpoint:    n.Case.Checkpoint,
		Status:        client.KYC_PENDING,
	}

	status := CaseStatus(strings.ToLower(strings.TrimSpace(string(n.Case.Status))))
	action := CaseAction(strings.ToLower(strings.TrimSpace(string(n.Action.Value))))

	if !knownCaseStatuses[status] {
		res.Provisional = true
		res.Reason = fmt.Sprintf("unrecognized case status %q", n.Case.Status)
		return res
	}
	if status != CaseResolved {
		return res
	}
	switch action {
	case CaseApprove:
		res.Status = client.KYC_APPROVED
	case CaseDecline:
		res.Status = client.KYC_REJECTED
	default:
		res.Provisional = true
		res.Reason = fmt.Sprintf("resolved case with unrecognized action %q", n.Action.Value)
	}
	return res
}
