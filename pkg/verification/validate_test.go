// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package verification

import (
	"strings"
	"testing"

	"github.com/paywell/kycgate/pkg/client"

	"github.com/stretchr/testify/require"
)

func testWithdrawal() *client.TransactionVerification {
	return &client.TransactionVerification{
		TransactionID:   "xfer-1",
		DebitConsumerID: "consumer-1",
		DebitAmount:     125.50,
		DebitCurrency:   "USD",
		WorkflowName:    client.WALLET_WITHDRAWAL,
		WithdrawalDetails: &client.WithdrawalDetails{
			BankName:      "First Bank",
			AccountNumber: "123456789",
			RoutingNumber: "121042882",
			AccountType:   client.CHECKING,
		},
	}
}

func TestValidateTransaction(t *testing.T) {
	require.NoError(t, ValidateTransaction(testWithdrawal()))

	deposit := &client.TransactionVerification{
		TransactionID:    "xfer-2",
		CreditConsumerID: "consumer-1",
		DebitAmount:      1000,
		DebitCurrency:    "USD",
		CreditAmount:     1000,
		CreditCurrency:   "USD",
		WorkflowName:     client.PAYROLL_DEPOSIT,
	}
	require.NoError(t, ValidateTransaction(deposit))

	require.Equal(t, ErrMissingTransaction, ValidateTransaction(nil))
}

func TestValidateTransaction__invalid(t *testing.T) {
	cases := map[string]func(*client.TransactionVerification){
		"missing transactionID": func(x *client.TransactionVerification) { x.TransactionID = " " },
		"unknown workflowName":  func(x *client.TransactionVerification) { x.WorkflowName = "CRYPTO" },
		"debitConsumerID":       func(x *client.TransactionVerification) { x.DebitConsumerID = "" },
		"debit amount":          func(x *client.TransactionVerification) { x.DebitAmount = 0 },
		"currency":              func(x *client.TransactionVerification) { x.DebitCurrency = "DOLLARS" },
		"credit amount":         func(x *client.TransactionVerification) { x.CreditConsumerID = "consumer-2" },
		"routingNumber":         func(x *client.TransactionVerification) { x.WithdrawalDetails.RoutingNumber = "121042883" },
		"accountNumber":         func(x *client.TransactionVerification) { x.WithdrawalDetails.AccountNumber = "" },
		"accountType":           func(x *client.TransactionVerification) { x.WithdrawalDetails.AccountType = "BROKERAGE" },
		"withdrawalDetails":     func(x *client.TransactionVerification) { x.WithdrawalDetails = nil },
	}
	for expected, mutate := range cases {
		xfer := testWithdrawal()
		mutate(xfer)

		err := ValidateTransaction(xfer)
		require.Error(t, err, expected)
		require.True(t, strings.Contains(err.Error(), expected), "%s: %v", expected, err)
	}
}

func TestValidateTransaction__transfer(t *testing.T) {
	xfer := &client.TransactionVerification{
		TransactionID:   "xfer-3",
		DebitConsumerID: "consumer-1",
		DebitAmount:     20,
		DebitCurrency:   "USD",
		WorkflowName:    client.WALLET_TRANSFER,
	}
	err := ValidateTransaction(xfer)
	require.Error(t, err)
	require.Contains(t, err.Error(), "wallet transfers need both")

	xfer.CreditConsumerID = "consumer-2"
	xfer.CreditAmount = 20
	xfer.CreditCurrency = "USD"
	require.NoError(t, ValidateTransaction(xfer))
}

func TestValidateTransaction__errorList(t *testing.T) {
	err := ValidateTransaction(&client.TransactionVerification{})
	require.Error(t, err)

	msg := err.Error()
	require.Contains(t, msg, "missing transactionID")
	require.Contains(t, msg, "unknown workflowName")
	require.Contains(t, msg, "debit amount")
}
