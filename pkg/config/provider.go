// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const DefaultProviderTimeout = 30 * time.Second

// Provider holds the connection details for the identity/risk verification
// provider. Requests are authenticated with HTTP Basic auth.
type Provider struct {
	// Endpoint is the provider's API base, e.g. https://api.sandbox.idv.example
	Endpoint string

	ClientID     string
	ClientSecret string

	// Timeout bounds every request made to the provider.
	Timeout time.Duration

	// CAFile is an optional PEM bundle trusted in addition to the system roots.
	CAFile string
}

// Secret returns the client secret, preferring IDV_CLIENT_SECRET from the environment.
func (cfg Provider) Secret() string {
	if v := strings.TrimSpace(os.Getenv("IDV_CLIENT_SECRET")); v != "" {
		return v
	}
	return cfg.ClientSecret
}

func (cfg Provider) Validate() error {
	if cfg.Endpoint == "" {
		return errors.New("missing endpoint")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint %q must be http or https", cfg.Endpoint)
	}
	if cfg.ClientID == "" || cfg.Secret() == "" {
		return errors.New("missing client id or secret")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("negative timeout: %v", cfg.Timeout)
	}
	return nil
}
