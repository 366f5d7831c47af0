// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package verification

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/paywell/kycgate/pkg/idv"
	"github.com/paywell/kycgate/x/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

type Router struct {
	Logger  log.Logger
	Service *Service

	// Events drops redeliveries of webhooks which were already handled.
	Events EventLog

	HandleWebhook http.HandlerFunc
}

func NewRouter(logger log.Logger, svc *Service) (*Router, error) {
	events, err := NewEventLog(DefaultProcessedEvents)
	if err != nil {
		return nil, err
	}
	return &Router{
		Logger:        logger,
		Service:       svc,
		Events:        events,
		HandleWebhook: HandleWebhook(logger, svc, events),
	}, nil
}

func (c *Router) RegisterRoutes(r *mux.Router) {
	r.Methods("POST").Path("/webhooks/idv").HandlerFunc(c.HandleWebhook)
}

type webhookResponse struct {
	EventID string `json:"eventID"`
	Status  string `json:"status,omitempty"`

	Provisional bool `json:"provisional,omitempty"`
	Duplicate   bool `json:"duplicate,omitempty"`
	Ignored     bool `json:"ignored,omitempty"`
}

// HandleWebhook answers 400 for webhooks it couldn't process so the provider
// retries them. Only events answered with a 200 are marked in events.
func HandleWebhook(logger log.Logger, svc *Service, events EventLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)

		event, err := idv.ReadWebhookEvent(r.Body)
		if err != nil {
			webhooksReceived.With("type", "unknown", "outcome", "malformed").Add(1)
			responder.Log("webhooks", fmt.Sprintf("malformed webhook from %s: %v", route.RemoteAddr(r.Header), err))
			responder.Problem(err)
			return
		}
		if events != nil && events.Processed(event.ID) {
			webhooksReceived.With("type", string(event.Type), "outcome", "duplicate").Add(1)
			responder.Log("webhooks", fmt.Sprintf("dropping redelivered webhook=%s", event.ID))
			respondWebhook(responder, webhookResponse{EventID: event.ID, Duplicate: true})
			return
		}

		resp, err := handleEvent(r, svc, event)
		if err != nil {
			responder.Log("webhooks", fmt.Sprintf("webhook=%s of type %s failed: %v", event.ID, event.Type, err))
			responder.Problem(err)
			return
		}
		respondWebhook(responder, *resp)

		if events != nil {
			events.MarkProcessed(event.ID)
		}
	}
}

func handleEvent(r *http.Request, svc *Service, event *idv.WebhookEvent) (*webhookResponse, error) {
	ctx := r.Context()
	switch event.Type {
	case idv.CaseStatusChange:
		n, err := event.CaseNotification()
		if err != nil {
			webhooksReceived.With("type", string(event.Type), "outcome", "malformed").Add(1)
			return nil, err
		}
		res := svc.HandleCaseNotification(ctx, event.ID, n)
		webhooksReceived.With("type", string(event.Type), "outcome", "processed").Add(1)
		return &webhookResponse{
			EventID:     event.ID,
			Status:      string(res.Status),
			Provisional: res.Provisional,
		}, nil

	case idv.DocumentVerificationFinished:
		doc, err := event.DocumentVerification()
		if err != nil {
			webhooksReceived.With("type", string(event.Type), "outcome", "malformed").Add(1)
			return nil, err
		}
		result, err := svc.HandleDocumentNotification(ctx, event.ID, doc)
		if err != nil {
			webhooksReceived.With("type", string(event.Type), "outcome", "failed").Add(1)
			return nil, err
		}
		webhooksReceived.With("type", string(event.Type), "outcome", "processed").Add(1)
		return &webhookResponse{
			EventID: event.ID,
			Status:  string(result.Status),
		}, nil
	}

	webhooksReceived.With("type", string(event.Type), "outcome", "ignored").Add(1)
	return &webhookResponse{EventID: event.ID, Ignored: true}, nil
}

func respondWebhook(responder *route.Responder, resp webhookResponse) {
	responder.Respond(func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	})
}
