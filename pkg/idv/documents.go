// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/paywell/kycgate/pkg/client"
)

var documentTypes = map[client.DocumentType]string{
	client.PASSPORT:        "passport",
	client.DRIVERS_LICENSE: "driving_licence",
	client.NATIONAL_ID:     "national_identity_card",
	client.RESIDENCE_CARD:  "residence_permit",
}

type documentRequest struct {
	SessionKey  string `json:"sessionKey"`
	CustomerID  string `json:"customerId"`
	Type        string `json:"type"`
	CountryCode string `json:"countryCode"`
}

type documentSubmission struct {
	ID             string `json:"id"`
	VerificationID string `json:"verificationId"`
}

func (s documentSubmission) verificationID() string {
	if s.VerificationID != "" {
		return s.VerificationID
	}
	return s.ID
}

func (c *provider) SubmitDocument(ctx context.Context, sessionKey string, upload *client.DocumentUpload) (string, error) {
	if upload == nil || upload.ConsumerID == "" {
		return "", errors.New("idv: missing document upload")
	}
	if len(upload.FrontImage) == 0 {
		return "", errors.New("idv: document upload has no front image")
	}
	docType, exists := documentTypes[upload.DocumentType]
	if !exists {
		return "", fmt.Errorf("idv: unknown document type %q", upload.DocumentType)
	}

	body, contentType, err := encodeDocumentUpload(&documentRequest{
		SessionKey:  sessionKeyOrNew(sessionKey),
		CustomerID:  upload.ConsumerID,
		Type:        docType,
		CountryCode: strings.ToUpper(upload.CountryCode),
	}, upload)
	if err != nil {
		return "", fmt.Errorf("idv submit-document: %v", err)
	}

	resp, err := c.do(ctx, "submit-document", "POST", "/v1/identity-documents/verifications", contentType, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// The provider answers 400 for documents it accepted but flagged, the
	// verification still exists and its ID is in the error body.
	if resp.StatusCode == http.StatusBadRequest {
		trackError("submit-document", resp.StatusCode)
		bs, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 1<<20))

		var sub documentSubmission
		if err := json.Unmarshal(bs, &sub); err == nil && sub.verificationID() != "" {
			c.logger.Log("idv", fmt.Sprintf("document for consumer=%s accepted with warning: %s", upload.ConsumerID, bs))
			return sub.verificationID(), nil
		}
		return "", &ProviderError{
			Operation:  "submit-document",
			StatusCode: resp.StatusCode,
			Body:       bs,
		}
	}
	if err := c.checkResponse("submit-document", resp); err != nil {
		return "", err
	}

	var sub documentSubmission
	if err := decodeResponse("submit-document", resp, &sub); err != nil {
		return "", err
	}
	if sub.verificationID() == "" {
		return "", errors.New("idv submit-document: response has no verification id")
	}
	return sub.verificationID(), nil
}

func encodeDocumentUpload(req *documentRequest, upload *client.DocumentUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	data, err := json.Marshal(req)
	if err != nil {
		return nil, "", err
	}
	if err := w.WriteField("data", string(data)); err != nil {
		return nil, "", err
	}

	files := []struct {
		field string
		data  []byte
	}{
		{"front", upload.FrontImage},
		{"back", upload.BackImage},
		{"selfie", upload.Selfie},
	}
	for i := range files {
		if len(files[i].data) == 0 {
			continue
		}
		part, err := w.CreateFormFile(files[i].field, files[i].field)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(files[i].data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *provider) DocumentVerificationResult(ctx context.Context, verificationID string) (*client.DocumentVerificationResult, error) {
	if verificationID == "" {
		return nil, ErrNotFound
	}
	resp, err := c.do(ctx, "get-document", "GET", "/v1/identity-documents/verifications/"+url.PathEscape(verificationID), "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse("get-document", resp); err != nil {
		return nil, err
	}
	var doc DocumentVerification
	if err := decodeResponse("get-document", resp, &doc); err != nil {
		return nil, err
	}
	if doc.ID == "" {
		return nil, ErrNotFound
	}
	return DocumentStatus(&doc)
}
