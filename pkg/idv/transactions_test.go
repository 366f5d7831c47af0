// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"context"
	"net/http"
	"testing"

	"github.com/paywell/kycgate/pkg/client"

	"github.com/stretchr/testify/require"
)

func testWithdrawal() *client.TransactionVerification {
	return &client.TransactionVerification{
		TransactionID:   "xfer-1",
		DebitConsumerID: "consumer-1",
		DebitAmount:     125.50,
		DebitCurrency:   "usd",
		WorkflowName:    client.WALLET_WITHDRAWAL,
		WithdrawalDetails: &client.WithdrawalDetails{
			BankName:      "First Bank",
			AccountNumber: "123456789",
			RoutingNumber: "121042882",
			AccountType:   client.CHECKING,
		},
	}
}

func TestVerifyTransaction(t *testing.T) {
	cases := []struct {
		level  string
		status client.KYCStatus
		wallet client.WalletStatus
	}{
		{"VERY_HIGH", client.KYC_REJECTED, client.WALLET_REJECTED},
		{"HIGH", client.KYC_PENDING, client.WALLET_FLAGGED},
		{"MEDIUM", client.KYC_APPROVED, client.WALLET_APPROVED},
		{"LOW", client.KYC_APPROVED, client.WALLET_APPROVED},
	}
	for i := range cases {
		body := `{"id":"cus-1","level":"LOW","transaction":{"score":10,"level":"` + cases[i].level + `"}}`
		c, server := newProviderWithServer(t, customerRoute(t, http.StatusOK, body, func(req *customerRequest) {
			require.Equal(t, []string{"aml", "payment"}, req.Checkpoints)
			require.Equal(t, "wallet_withdrawal", req.Flow)
			require.NotNil(t, req.Transaction)
			require.Equal(t, "withdraw", req.Transaction.Action)
			require.Equal(t, "USD", req.Transaction.Amount.Currency)
			require.Equal(t, 125.50, req.Transaction.Amount.Value)
			require.Equal(t, "checking", req.Transaction.PaymentMethod.AccountType)
			require.Nil(t, req.Transaction.Recipient)
		}))

		result, err := c.VerifyTransaction(context.Background(), "sess-1", testConsumer, testWithdrawal())
		server.Close()

		require.NoError(t, err, cases[i].level)
		require.Equal(t, cases[i].status, result.Status, cases[i].level)
		require.Equal(t, cases[i].wallet, result.WalletStatus, cases[i].level)
	}
}

func TestVerifyTransaction__transfer(t *testing.T) {
	xfer := &client.TransactionVerification{
		TransactionID:    "xfer-2",
		DebitConsumerID:  "consumer-1",
		CreditConsumerID: "consumer-2",
		DebitAmount:      20,
		DebitCurrency:    "USD",
		CreditAmount:     20,
		CreditCurrency:   "USD",
		WorkflowName:     client.WALLET_TRANSFER,
	}
	c, server := newProviderWithServer(t, customerRoute(t, http.StatusOK, `{"id":"cus-1","level":"HIGH"}`, func(req *customerRequest) {
		require.Equal(t, "transfer", req.Transaction.Action)
		require.NotNil(t, req.Transaction.Recipient)
		require.Equal(t, "consumer-2", req.Transaction.Recipient.CustomerID)
		require.Nil(t, req.Transaction.PaymentMethod)
	}))
	defer server.Close()

	// falls back to the overall level without a transaction score
	result, err := c.VerifyTransaction(context.Background(), "sess-1", testConsumer, xfer)
	require.NoError(t, err)
	require.Equal(t, client.KYC_PENDING, result.Status)
	require.Equal(t, client.WALLET_FLAGGED, result.WalletStatus)
}

func TestVerifyTransaction__unknownWorkflow(t *testing.T) {
	c, server := newProviderWithServer(t)
	defer server.Close()

	xfer := testWithdrawal()
	xfer.WorkflowName = "CRYPTO_PURCHASE"

	_, err := c.VerifyTransaction(context.Background(), "sess-1", testConsumer, xfer)
	require.Error(t, err)
	require.True(t, IsFatal(err))

	_, err = c.VerifyTransaction(context.Background(), "sess-1", testConsumer, nil)
	require.Error(t, err)
}

func TestVerifyTransaction__providerError(t *testing.T) {
	c, server := newProviderWithServer(t, customerRoute(t, http.StatusInternalServerError, `{"error":"boom"}`, nil))
	defer server.Close()

	_, err := c.VerifyTransaction(context.Background(), "sess-1", testConsumer, testWithdrawal())
	require.Error(t, err)
	require.False(t, IsFatal(err))

	perr, ok := err.(*ProviderError)
	require.True(t, ok)
	require.Equal(t, http.StatusInternalServerError, perr.StatusCode)
}
