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

type transactionCheck struct {
	ID     string           `json:"id"`
	Action string           `json:"action"`
	Amount transactionValue `json:"amount"`

	Recipient     *transactionParty `json:"recipient,omitempty"`
	PaymentMethod *paymentMethod    `json:"paymentMethod,omitempty"`
}

type transactionValue struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

type transactionParty struct {
	CustomerID string           `json:"customerId"`
	Amount     transactionValue `json:"amount"`
}

type paymentMethod struct {
	Type          string `json:"type"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
	AccountType   string `json:"accountType"`
}

// transactionActions is how each workflow moves money from the provider's
// point of view.
var transactionActions = map[client.WorkflowName]string{
	client.WALLET_DEPOSIT:    "deposit",
	client.PAYROLL_DEPOSIT:   "deposit",
	client.PAYROLL_ADVANCE:   "deposit",
	client.WALLET_WITHDRAWAL: "withdraw",
	client.WALLET_TRANSFER:   "transfer",
}

func newTransactionCheck(xfer *client.TransactionVerification) (*transactionCheck, error) {
	action, exists := transactionActions[xfer.WorkflowName]
	if !exists {
		return nil, unrecognized("transaction", "workflow", xfer.WorkflowName)
	}
	check := &transactionCheck{
		ID:     xfer.TransactionID,
		Action: action,
		Amount: transactionValue{
			Value:    xfer.DebitAmount,
			Currency: strings.ToUpper(xfer.DebitCurrency),
		},
	}
	if xfer.CreditConsumerID != "" {
		check.Recipient = &transactionParty{
			CustomerID: xfer.CreditConsumerID,
			Amount: transactionValue{
				Value:    xfer.CreditAmount,
				Currency: strings.ToUpper(xfer.CreditCurrency),
			},
		}
	}
	if w := xfer.WithdrawalDetails; w != nil {
		check.PaymentMethod = &paymentMethod{
			Type:          "bank_account",
			BankName:      w.BankName,
			AccountNumber: w.AccountNumber,
			RoutingNumber: w.RoutingNumber,
			AccountType:   strings.ToLower(string(w.AccountType)),
		}
	}
	return check, nil
}

func (c *provider) VerifyTransaction(ctx context.Context, sessionKey string, consumer *client.Consumer, xfer *client.TransactionVerification) (*client.ConsumerVerificationResult, error) {
	if consumer == nil || consumer.ConsumerID == "" {
		return nil, errors.New("idv: missing consumer")
	}
	if xfer == nil {
		return nil, errors.New("idv: missing transaction")
	}
	check, err := newTransactionCheck(xfer)
	if err != nil {
		return nil, err
	}
	req := &customerRequest{
		SessionKey:  sessionKeyOrNew(sessionKey),
		CustomerID:  consumer.ConsumerID,
		Flow:        strings.ToLower(string(xfer.WorkflowName)),
		Checkpoints: []string{checkpointAML, checkpointPayment},
		Customer:    newCustomerDetails(consumer),
		Transaction: check,
	}
	resp, err := c.screenCustomer(ctx, "verify-transaction", req)
	if err != nil {
		return nil, err
	}

	level := resp.Level
	if resp.Transaction != nil && resp.Transaction.Level != "" {
		level = resp.Transaction.Level
	}
	status, wallet, err := TransactionStatus(level)
	if err != nil {
		return nil, err
	}
	return &client.ConsumerVerificationResult{
		Status:               status,
		SessionKey:           req.SessionKey,
		IDVProviderRiskLevel: string(level),
		SanctionLevel:        string(resp.SanctionLevel),
		PEPLevel:             string(resp.PEPLevel),
		WalletStatus:         wallet,
	}, nil
}
