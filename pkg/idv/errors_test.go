// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	verr := &ValidationError{Operation: "verify-consumer", Body: []byte(`{"error":"bad"}`)}
	require.Equal(t, `{"error":"bad"}`, verr.Error())

	perr := &ProviderError{Operation: "get-document", StatusCode: 503}
	require.Equal(t, "idv get-document: unexpected HTTP status 503", perr.Error())

	perr.Body = []byte("down")
	require.Equal(t, "idv get-document: unexpected HTTP status 503: down", perr.Error())

	uerr := unrecognized("device", "risk level", RiskLevel("extreme"))
	require.Equal(t, `idv device: unrecognized risk level "extreme"`, uerr.Error())
}

func TestIsFatal(t *testing.T) {
	require.False(t, IsFatal(nil))
	require.False(t, IsFatal(errors.New("boom")))
	require.False(t, IsFatal(ErrNotFound))

	err := unrecognized("consumer", "risk level", "x")
	require.True(t, IsFatal(err))
	require.True(t, IsFatal(fmt.Errorf("wrapped: %w", err)))
}
