// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/paywell/kycgate/pkg/config"
	"github.com/paywell/kycgate/x/mask"
)

func configPath() string {
	if v := os.Getenv("CONFIG_FILE"); v != "" {
		return v
	}
	return *flagConfigFile
}

func readConfig(path string) *config.Config {
	cfg, err := config.FromFile(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// Environment overrides for the bind addresses
	if v := os.Getenv("HTTP_BIND_ADDRESS"); v != "" {
		cfg.Http.BindAddress = v
	}
	if v := os.Getenv("HTTP_ADMIN_BIND_ADDRESS"); v != "" {
		cfg.Admin.BindAddress = v
	}

	cfg.Logger.Log(
		"config", fmt.Sprintf("using provider %s", cfg.Provider.Endpoint),
		"clientID", cfg.Provider.ClientID,
		"clientSecret", mask.Password(cfg.Provider.Secret()),
	)
	return cfg
}
