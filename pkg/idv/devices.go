// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"context"
	"net/url"
	"strings"

	"github.com/paywell/kycgate/pkg/client"
)

type deviceResponse struct {
	ID         string    `json:"id"`
	SessionKey string    `json:"sessionKey"`
	RiskLevel  RiskLevel `json:"riskLevel"`
}

var knownDeviceLevels = map[RiskLevel]bool{
	LowRisk:      true,
	MediumRisk:   true,
	HighRisk:     true,
	VeryHighRisk: true,
	UnknownRisk:  true,
}

func (c *provider) DeviceRisk(ctx context.Context, sessionKey string) (*client.DeviceRisk, error) {
	if sessionKey == "" {
		return nil, ErrNotFound
	}
	q := url.Values{}
	q.Set("sessionKey", sessionKey)

	resp, err := c.do(ctx, "device-risk", "GET", "/v1/devices?"+q.Encode(), "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse("device-risk", resp); err != nil {
		return nil, err
	}
	var device deviceResponse
	if err := decodeResponse("device-risk", resp, &device); err != nil {
		return nil, err
	}
	if device.ID == "" {
		return nil, ErrNotFound
	}
	if !knownDeviceLevels[device.RiskLevel] {
		return nil, unrecognized("device", "risk level", device.RiskLevel)
	}
	return &client.DeviceRisk{
		SessionKey: sessionKey,
		DeviceID:   device.ID,
		RiskLevel:  strings.ToUpper(string(device.RiskLevel)),
		RiskRating: strings.ToLower(string(device.RiskLevel)),
	}, nil
}
