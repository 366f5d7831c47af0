// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package verification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*testService, *mux.Router) {
	t.Helper()

	svc := newTestService()
	router := mux.NewRouter()
	webhooks, err := NewRouter(log.NewNopLogger(), svc.Service)
	require.NoError(t, err)
	webhooks.RegisterRoutes(router)
	return svc, router
}

func postWebhook(router *mux.Router, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/webhooks/idv", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	w.Flush()
	return w
}

func readWebhookResponse(t *testing.T, w *httptest.ResponseRecorder) webhookResponse {
	t.Helper()
	var resp webhookResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestRouter__caseWebhook(t *testing.T) {
	svc, router := newTestRouter(t)

	body := `{"id":"evt-1","type":"case_status_change","data":{"action":{"value":"approve"},"case":{"customerId":"consumer-1","status":"resolved"}}}`
	w := postWebhook(router, body)
	require.Equal(t, http.StatusOK, w.Code)

	resp := readWebhookResponse(t, w)
	require.Equal(t, "evt-1", resp.EventID)
	require.Equal(t, "APPROVED", resp.Status)
	require.False(t, resp.Provisional)
	require.Len(t, svc.publisher.Published(), 1)

	// redelivery
	w = postWebhook(router, body)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, readWebhookResponse(t, w).Duplicate)
	require.Len(t, svc.publisher.Published(), 1)
}

func TestRouter__provisionalCase(t *testing.T) {
	svc, router := newTestRouter(t)

	w := postWebhook(router, `{"id":"evt-2","type":"case_status_change","data":{"action":{"value":"escalate"},"case":{"customerId":"consumer-1","status":"resolved"}}}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := readWebhookResponse(t, w)
	require.Equal(t, "PENDING", resp.Status)
	require.True(t, resp.Provisional)
	require.True(t, svc.notifier.InfoWasCalled())
}

func TestRouter__documentWebhook(t *testing.T) {
	svc, router := newTestRouter(t)

	w := postWebhook(router, `{"id":"evt-3","type":"document_verification","data":{"id":"ver-1","customerId":"consumer-1","status":"COMPLETE","verification":{"riskLevel":"MEDIUM"}}}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "APPROVED", readWebhookResponse(t, w).Status)

	published := svc.publisher.Published()
	require.Len(t, published, 1)
	require.Equal(t, "medium", published[0].RiskLevel)
}

func TestRouter__fatalDocumentWebhook(t *testing.T) {
	svc, router := newTestRouter(t)

	w := postWebhook(router, `{"id":"evt-4","type":"document_verification","data":{"id":"ver-1","status":"ERROR","errorCodes":["DOCUMENT_EXPIRED"]}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.True(t, svc.notifier.CriticalWasCalled())
	require.Len(t, svc.publisher.Published(), 0)
}

func TestRouter__unknownWebhook(t *testing.T) {
	svc, router := newTestRouter(t)

	w := postWebhook(router, `{"id":"evt-5","type":"customer_updated","data":{}}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, readWebhookResponse(t, w).Ignored)
	require.Len(t, svc.publisher.Published(), 0)
}

func TestRouter__malformedWebhook(t *testing.T) {
	_, router := newTestRouter(t)

	bodies := []string{
		`not json`,
		`{"type":"case_status_change","data":{}}`,
		`{"id":"evt-6","type":"case_status_change","data":{"case":{"status":"resolved"}}}`,
		`{"id":"evt-7","type":"document_verification","data":{"status":"PENDING"}}`,
	}
	for i := range bodies {
		w := postWebhook(router, bodies[i])
		require.Equal(t, http.StatusBadRequest, w.Code, bodies[i])
	}
}

func TestRouter__fatalDocumentWebhookRetried(t *testing.T) {
	svc, router := newTestRouter(t)

	body := `{"id":"evt-9","type":"document_verification","data":{"id":"ver-9","status":"ERROR","errorCodes":["DOCUMENT_EXPIRED"]}}`
	for i := 0; i < 2; i++ {
		w := postWebhook(router, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "delivery %d", i+1)
	}
	require.Len(t, svc.publisher.Published(), 0)
}

func TestRouter__malformedCaseWebhookRetried(t *testing.T) {
	svc, router := newTestRouter(t)

	w := postWebhook(router, `{"id":"evt-10","type":"case_status_change","data":{"case":{"status":"resolved"}}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// the retry carries a complete payload
	w = postWebhook(router, `{"id":"evt-10","type":"case_status_change","data":{"action":{"value":"decline"},"case":{"customerId":"consumer-1","status":"resolved"}}}`)
	require.Equal(t, http.StatusOK, w.Code)

	resp := readWebhookResponse(t, w)
	require.Equal(t, "REJECTED", resp.Status)
	require.False(t, resp.Duplicate)
	require.Len(t, svc.publisher.Published(), 1)
}

func TestEventLog(t *testing.T) {
	events, err := NewEventLog(2)
	require.NoError(t, err)

	require.False(t, events.Processed("evt-1"))
	require.False(t, events.Processed("evt-1"))

	events.MarkProcessed("evt-1")
	require.True(t, events.Processed("evt-1"))

	events.MarkProcessed("evt-2")
	events.MarkProcessed("evt-3")
	require.False(t, events.Processed("evt-1"))

	_, err = NewEventLog(0)
	require.Error(t, err)
}
