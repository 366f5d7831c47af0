// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

// KYCStatus is the platform's verdict on a consumer or transaction screening.
type KYCStatus string

const (
	KYC_APPROVED KYCStatus = "APPROVED"
	KYC_PENDING  KYCStatus = "PENDING"
	KYC_REJECTED KYCStatus = "REJECTED"
)

// WalletStatus controls what a consumer's wallet is allowed to do after a screening.
type WalletStatus string

const (
	WALLET_APPROVED WalletStatus = "APPROVED"
	WALLET_PENDING  WalletStatus = "PENDING"
	WALLET_FLAGGED  WalletStatus = "FLAGGED"
	WALLET_REJECTED WalletStatus = "REJECTED"
)

// DocumentVerificationStatus is the platform's verdict on an identity document.
type DocumentVerificationStatus string

const (
	DOCUMENT_PENDING                                DocumentVerificationStatus = "PENDING"
	DOCUMENT_APPROVED                               DocumentVerificationStatus = "APPROVED"
	DOCUMENT_REJECTED                               DocumentVerificationStatus = "REJECTED"
	DOCUMENT_REJECTED_DOCUMENT_REQUIRES_RECAPTURE   DocumentVerificationStatus = "REJECTED_DOCUMENT_REQUIRES_RECAPTURE"
	DOCUMENT_REJECTED_DOCUMENT_POOR_QUALITY         DocumentVerificationStatus = "REJECTED_DOCUMENT_POOR_QUALITY"
	DOCUMENT_REJECTED_DOCUMENT_INVALID_SIZE_OR_TYPE DocumentVerificationStatus = "REJECTED_DOCUMENT_INVALID_SIZE_OR_TYPE"
)

// FeedbackStatus is the platform's final decision reported back to the provider.
type FeedbackStatus string

const (
	FEEDBACK_APPROVED FeedbackStatus = "APPROVED"
	FEEDBACK_DECLINED FeedbackStatus = "DECLINED"
)
