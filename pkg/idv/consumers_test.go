// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/paywell/kycgate/pkg/client"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

var (
	testConsumer = &client.Consumer{
		ConsumerID:  "consumer-1",
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1990-04-12",
		Email:       "jane@example.com",
		Phone:       "+15555550123",
		Address: &client.Address{
			StreetLine1: "123 Main St",
			City:        "Austin",
			RegionCode:  "TX",
			PostalCode:  "78701",
			CountryCode: "us",
		},
	}
)

func customerRoute(t *testing.T, status int, body string, check func(*customerRequest)) func(*mux.Router) {
	return func(r *mux.Router) {
		r.Methods("POST").Path("/v1/customers").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req customerRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decoding customer request: %v", err)
			}
			if check != nil {
				check(&req)
			}
			writeJSON(w, status, body)
		})
	}
}

func TestVerifyConsumer(t *testing.T) {
	c, server := newProviderWithServer(t, customerRoute(t, http.StatusOK, `{
  "id": "cus-1",
  "level": "MEDIUM",
  "sanctionLevel": "low",
  "pepLevel": "low",
  "customer": {"score": 31.5, "level": "MEDIUM", "reasonCodes": ["ADDRESS_MISMATCH"]}
}`, func(req *customerRequest) {
		require.Equal(t, "sess-1", req.SessionKey)
		require.Equal(t, "consumer-1", req.CustomerID)
		require.Equal(t, "onboarding", req.Flow)
		require.Equal(t, []string{"customer", "aml"}, req.Checkpoints)
		require.Equal(t, "US", req.Customer.Address.CountryCode)
		require.Nil(t, req.Transaction)
	}))
	defer server.Close()

	result, err := c.VerifyConsumer(context.Background(), "sess-1", testConsumer)
	require.NoError(t, err)
	require.Equal(t, client.KYC_APPROVED, result.Status)
	require.Equal(t, "medium", result.IDVProviderRiskLevel)
	require.Equal(t, "low", result.SanctionLevel)
	require.Equal(t, "low", result.PEPLevel)
	require.Empty(t, result.WalletStatus)
}

func TestVerifyConsumer__generatedSessionKey(t *testing.T) {
	var sent string
	c, server := newProviderWithServer(t, customerRoute(t, http.StatusOK, `{"id": "cus-1", "level": "VERY_HIGH"}`, func(req *customerRequest) {
		require.NotEmpty(t, req.SessionKey)
		sent = req.SessionKey
	}))
	defer server.Close()

	result, err := c.VerifyConsumer(context.Background(), "", testConsumer)
	require.NoError(t, err)
	require.Equal(t, client.KYC_REJECTED, result.Status)
	require.Equal(t, sent, result.SessionKey)
}

func TestVerifyConsumer__validationError(t *testing.T) {
	body := `{"code":"validation_error","errors":[{"field":"dateOfBirth","message":"must be in the past"}]}`
	c, server := newProviderWithServer(t, customerRoute(t, http.StatusUnprocessableEntity, body, nil))
	defer server.Close()

	_, err := c.VerifyConsumer(context.Background(), "sess-1", testConsumer)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	var got, expected interface{}
	require.NoError(t, json.Unmarshal([]byte(err.Error()), &got))
	require.NoError(t, json.Unmarshal([]byte(body), &expected))
	require.Equal(t, expected, got)
}

func TestVerifyConsumer__unrecognizedLevel(t *testing.T) {
	c, server := newProviderWithServer(t, customerRoute(t, http.StatusOK, `{"id": "cus-1", "level": "EXTREME"}`, nil))
	defer server.Close()

	_, err := c.VerifyConsumer(context.Background(), "sess-1", testConsumer)
	require.Error(t, err)
	require.True(t, IsFatal(err))
}

func TestVerifyConsumer__missing(t *testing.T) {
	c, server := newProviderWithServer(t)
	defer server.Close()

	_, err := c.VerifyConsumer(context.Background(), "sess-1", nil)
	require.Error(t, err)

	_, err = c.VerifyConsumer(context.Background(), "sess-1", &client.Consumer{})
	require.Error(t, err)
}
