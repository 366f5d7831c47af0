// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

// WorkflowName identifies which ledger flow produced a transaction.
type WorkflowName string

const (
	WALLET_DEPOSIT    WorkflowName = "WALLET_DEPOSIT"
	WALLET_WITHDRAWAL WorkflowName = "WALLET_WITHDRAWAL"
	WALLET_TRANSFER   WorkflowName = "WALLET_TRANSFER"
	PAYROLL_DEPOSIT   WorkflowName = "PAYROLL_DEPOSIT"
	PAYROLL_ADVANCE   WorkflowName = "PAYROLL_ADVANCE"
)

// TransactionVerification describes a pending ledger movement which is
// screened in real-time before it is allowed to settle.
type TransactionVerification struct {
	TransactionID string `json:"transactionID"`

	DebitConsumerID  string `json:"debitConsumerID,omitempty"`
	CreditConsumerID string `json:"creditConsumerID,omitempty"`

	// Amounts are expressed in the major unit of their currency, e.g. 12.45
	DebitAmount    float64 `json:"debitAmount,omitempty"`
	DebitCurrency  string  `json:"debitCurrency,omitempty"`
	CreditAmount   float64 `json:"creditAmount,omitempty"`
	CreditCurrency string  `json:"creditCurrency,omitempty"`

	WorkflowName      WorkflowName       `json:"workflowName"`
	WithdrawalDetails *WithdrawalDetails `json:"withdrawalDetails,omitempty"`
}

type AccountType string

const (
	CHECKING AccountType = "CHECKING"
	SAVINGS  AccountType = "SAVINGS"
)

// WithdrawalDetails is the destination bank account of a withdrawal.
type WithdrawalDetails struct {
	BankName      string      `json:"bankName,omitempty"`
	AccountNumber string      `json:"accountNumber"`
	RoutingNumber string      `json:"routingNumber"`
	AccountType   AccountType `json:"accountType"`
}
