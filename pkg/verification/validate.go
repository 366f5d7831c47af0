// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package verification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paywell/kycgate/pkg/client"
	"github.com/paywell/kycgate/pkg/model"

	"github.com/moov-io/ach"
	"github.com/moov-io/base"
)

var (
	ErrMissingTransaction = errors.New("missing transaction")
)

var knownWorkflows = map[client.WorkflowName]bool{
	client.WALLET_DEPOSIT:    true,
	client.WALLET_WITHDRAWAL: true,
	client.WALLET_TRANSFER:   true,
	client.PAYROLL_DEPOSIT:   true,
	client.PAYROLL_ADVANCE:   true,
}

// ValidateTransaction checks a transaction before it's sent for screening and
// returns every problem found.
func ValidateTransaction(xfer *client.TransactionVerification) error {
	if xfer == nil {
		return ErrMissingTransaction
	}

	var el base.ErrorList
	if strings.TrimSpace(xfer.TransactionID) == "" {
		el.Add(errors.New("missing transactionID"))
	}
	if !knownWorkflows[xfer.WorkflowName] {
		el.Add(fmt.Errorf("unknown workflowName %q", xfer.WorkflowName))
	}

	if xfer.DebitConsumerID == "" && xfer.CreditConsumerID == "" {
		el.Add(errors.New("missing debitConsumerID and creditConsumerID"))
	}
	if xfer.WorkflowName == client.WALLET_TRANSFER && (xfer.DebitConsumerID == "" || xfer.CreditConsumerID == "") {
		el.Add(errors.New("wallet transfers need both debitConsumerID and creditConsumerID"))
	}

	if _, err := model.NewPositiveAmount(xfer.DebitCurrency, xfer.DebitAmount); err != nil {
		el.Add(fmt.Errorf("debit amount: %v", err))
	}
	if xfer.CreditConsumerID != "" || xfer.CreditAmount != 0 || xfer.CreditCurrency != "" {
		if _, err := model.NewPositiveAmount(xfer.CreditCurrency, xfer.CreditAmount); err != nil {
			el.Add(fmt.Errorf("credit amount: %v", err))
		}
	}

	if xfer.WorkflowName == client.WALLET_WITHDRAWAL {
		if err := validateWithdrawal(xfer.WithdrawalDetails); err != nil {
			el.Add(fmt.Errorf("withdrawalDetails: %v", err))
		}
	}
	return el.Err()
}

func validateWithdrawal(details *client.WithdrawalDetails) error {
	if details == nil {
		return errors.New("missing")
	}
	if err := ach.CheckRoutingNumber(details.RoutingNumber); err != nil {
		return fmt.Errorf("routingNumber: %v", err)
	}
	if strings.TrimSpace(details.AccountNumber) == "" {
		return errors.New("missing accountNumber")
	}
	switch details.AccountType {
	case client.CHECKING, client.SAVINGS:
	default:
		return fmt.Errorf("unknown accountType %q", details.AccountType)
	}
	return nil
}
