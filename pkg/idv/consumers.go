// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"context"
	"errors"
	"strings"

	"github.com/paywell/kycgate/pkg/client"
)

const (
	checkpointCustomer = "customer"
	checkpointAML      = "aml"
	checkpointPayment  = "payment"
)

type customerRequest struct {
	SessionKey  string            `json:"sessionKey"`
	CustomerID  string            `json:"customerId"`
	Flow        string            `json:"flow"`
	Checkpoints []string          `json:"checkpoints"`
	Customer    *customerDetails  `json:"customer,omitempty"`
	Transaction *transactionCheck `json:"transaction,omitempty"`
}

type customerDetails struct {
	FirstName   string           `json:"firstName,omitempty"`
	LastName    string           `json:"lastName,omitempty"`
	DateOfBirth string           `json:"dateOfBirth,omitempty"`
	Email       string           `json:"email,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	Address     *customerAddress `json:"address,omitempty"`
}

type customerAddress struct {
	Line1       string `json:"line1,omitempty"`
	Line2       string `json:"line2,omitempty"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

type customerResponse struct {
	ID            string     `json:"id"`
	Level         RiskLevel  `json:"level"`
	SanctionLevel RiskLevel  `json:"sanctionLevel,omitempty"`
	PEPLevel      RiskLevel  `json:"pepLevel,omitempty"`
	Customer      *riskScore `json:"customer,omitempty"`
	Transaction   *riskScore `json:"transaction,omitempty"`
}

type riskScore struct {
	Score       float64   `json:"score"`
	Level       RiskLevel `json:"level"`
	ReasonCodes []string  `json:"reasonCodes,omitempty"`
}

func newCustomerDetails(consumer *client.Consumer) *customerDetails {
	if consumer == nil {
		return nil
	}
	details := &customerDetails{
		FirstName:   consumer.FirstName,
		LastName:    consumer.LastName,
		DateOfBirth: consumer.DateOfBirth,
		Email:       consumer.Email,
		Phone:       consumer.Phone,
	}
	if addr := consumer.Address; addr != nil {
		details.Address = &customerAddress{
			Line1:       addr.StreetLine1,
			Line2:       addr.StreetLine2,
			City:        addr.City,
			Region:      addr.RegionCode,
			PostalCode:  addr.PostalCode,
			CountryCode: strings.ToUpper(addr.CountryCode),
		}
	}
	return details
}

func (c *provider) VerifyConsumer(ctx context.Context, sessionKey string, consumer *client.Consumer) (*client.ConsumerVerificationResult, error) {
	if consumer == nil || consumer.ConsumerID == "" {
		return nil, errors.New("idv: missing consumer")
	}
	req := &customerRequest{
		SessionKey:  sessionKeyOrNew(sessionKey),
		CustomerID:  consumer.ConsumerID,
		Flow:        "onboarding",
		Checkpoints: []string{checkpointCustomer, checkpointAML},
		Customer:    newCustomerDetails(consumer),
	}
	resp, err := c.screenCustomer(ctx, "verify-consumer", req)
	if err != nil {
		return nil, err
	}

	status, err := ConsumerStatus(resp.Level)
	if err != nil {
		return nil, err
	}
	return &client.ConsumerVerificationResult{
		Status:               status,
		SessionKey:           req.SessionKey,
		IDVProviderRiskLevel: string(resp.Level),
		SanctionLevel:        string(resp.SanctionLevel),
		PEPLevel:             string(resp.PEPLevel),
	}, nil
}

// screenCustomer posts a screening request and decodes the provider's grade.
func (c *provider) screenCustomer(ctx context.Context, operation string, body *customerRequest) (*customerResponse, error) {
	resp, err := c.postJSON(ctx, operation, "/v1/customers", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(operation, resp); err != nil {
		return nil, err
	}
	var wrapper customerResponse
	if err := decodeResponse(operation, resp, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper, nil
}
