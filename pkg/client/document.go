// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

type DocumentType string

const (
	PASSPORT        DocumentType = "PASSPORT"
	DRIVERS_LICENSE DocumentType = "DRIVERS_LICENSE"
	NATIONAL_ID     DocumentType = "NATIONAL_ID"
	RESIDENCE_CARD  DocumentType = "RESIDENCE_CARD"
)

// DocumentUpload is an identity document submitted for verification. Images
// are raw JPEG or PNG bytes; BackImage and Selfie are optional.
type DocumentUpload struct {
	ConsumerID   string       `json:"consumerID"`
	DocumentType DocumentType `json:"documentType"`
	CountryCode  string       `json:"countryCode"`

	FrontImage []byte `json:"-"`
	BackImage  []byte `json:"-"`
	Selfie     []byte `json:"-"`
}

type DocumentVerificationResult struct {
	Status     DocumentVerificationStatus `json:"status"`
	RiskRating string                     `json:"riskRating,omitempty"`
}
