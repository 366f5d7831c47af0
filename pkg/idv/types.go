// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"encoding/json"
	"strings"
)

// RiskLevel is the provider's graded severity for a consumer, document,
// device or transaction.
type RiskLevel string

const (
	LowRisk      RiskLevel = "low"
	MediumRisk   RiskLevel = "medium"
	HighRisk     RiskLevel = "high"
	VeryHighRisk RiskLevel = "very_high"
	UnknownRisk  RiskLevel = "unknown"
)

func (lvl *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*lvl = RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// DocumentProcessingStatus is where the provider is in processing a document.
type DocumentProcessingStatus string

const (
	DocumentProcessingPending    DocumentProcessingStatus = "pending"
	DocumentProcessingProcessing DocumentProcessingStatus = "processing"
	DocumentProcessingComplete   DocumentProcessingStatus = "complete"
	DocumentProcessingError      DocumentProcessingStatus = "error"
	DocumentProcessingRejected   DocumentProcessingStatus = "rejected"
)

func (st *DocumentProcessingStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*st = DocumentProcessingStatus(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

// DocumentErrorCode explains why the provider could not process a document.
type DocumentErrorCode string

const (
	DocumentUnrecognizable    DocumentErrorCode = "DOCUMENT_UNRECOGNIZABLE"
	DocumentBadSizeOrType     DocumentErrorCode = "DOCUMENT_BAD_SIZE_OR_TYPE"
	DocumentRequiresRecapture DocumentErrorCode = "DOCUMENT_REQUIRES_RECAPTURE"
)

func (code *DocumentErrorCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*code = DocumentErrorCode(strings.ToUpper(strings.TrimSpace(s)))
	return nil
}

// DocumentVerification is the provider's view of a submitted document, shared
// by the lookup endpoint and document_verification webhooks.
type DocumentVerification struct {
	ID           string                   `json:"id"`
	SessionKey   string                   `json:"sessionKey,omitempty"`
	CustomerID   string                   `json:"customerId,omitempty"`
	Status       DocumentProcessingStatus `json:"status"`
	Verification *DocumentRisk            `json:"verification,omitempty"`
	ErrorCodes   []DocumentErrorCode      `json:"errorCodes,omitempty"`
}

type DocumentRisk struct {
	RiskLevel RiskLevel `json:"riskLevel"`
}

func (doc *DocumentVerification) riskLevel() RiskLevel {
	if doc == nil || doc.Verification == nil {
		return ""
	}
	return doc.Verification.RiskLevel
}

// CaseStatus is the state of a manual review case on the provider's side.
type CaseStatus string

const (
	CasePending    CaseStatus = "pending"
	CaseInProgress CaseStatus = "in_progress"
	CaseResolved   CaseStatus = "resolved"
)

// CaseAction is the reviewer's decision on a resolved case.
type CaseAction string

const (
	CaseApprove CaseAction = "approve"
	CaseDecline CaseAction = "decline"
)
