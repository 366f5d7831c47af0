// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

// Consumer holds the fields of a platform consumer which are shared with the
// identity provider. It is read-only from kycgate's point of view.
type Consumer struct {
	ConsumerID  string   `json:"consumerID"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Address     *Address `json:"address,omitempty"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"` // YYYY-MM-DD
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
}

type Address struct {
	StreetLine1 string `json:"streetLine1,omitempty"`
	StreetLine2 string `json:"streetLine2,omitempty"`
	City        string `json:"city,omitempty"`
	RegionCode  string `json:"regionCode,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// ConsumerVerificationResult is produced for each consumer or transaction
// screening. Callers persist it onto their Consumer record.
type ConsumerVerificationResult struct {
	Status KYCStatus `json:"status"`

	// SessionKey correlates later case webhooks with this screening.
	SessionKey string `json:"sessionKey,omitempty"`

	// IDVProviderRiskLevel is the provider's raw risk grade, e.g. "high"
	IDVProviderRiskLevel string `json:"idvProviderRiskLevel,omitempty"`
	SanctionLevel        string `json:"sanctionLevel,omitempty"`
	PEPLevel             string `json:"pepLevel,omitempty"`

	// WalletStatus is only set by transaction screenings
	WalletStatus WalletStatus `json:"walletStatus,omitempty"`
}

// DeviceRisk is the provider's assessment of the device behind a session.
type DeviceRisk struct {
	SessionKey string `json:"sessionKey"`
	DeviceID   string `json:"deviceID,omitempty"`
	RiskLevel  string `json:"riskLevel"`
	RiskRating string `json:"riskRating"`
}
