// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/moov-io/base"
	"github.com/moov-io/base/http/bind"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/viper"
)

type Config struct {
	Logger  log.Logger `yaml:"-" json:"-"`
	Logging Logging

	Http  HTTP
	Admin Admin

	Provider Provider

	Events        *Events
	Notifications *Notifications
	Tracing       *Tracing
}

type Logging struct {
	Format string
	Level  string
}

type HTTP struct {
	BindAddress string
}

type Admin struct {
	BindAddress string
}

func Empty() *Config {
	return &Config{
		Logger: log.NewNopLogger(),
		Admin: Admin{
			BindAddress: bind.Admin("kycgate"),
		},
		Http: HTTP{
			BindAddress: bind.HTTP("kycgate"),
		},
		Provider: Provider{
			Timeout: DefaultProviderTimeout,
		},
	}
}

// FromFile reads the YAML config at path. An empty path returns the defaults,
// which only validate when the provider is configured through the environment.
func FromFile(path string) (*Config, error) {
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %v", path, err)
		}
		return Read(bs)
	}
	cfg := Empty()
	cfg.Provider.Endpoint = os.Getenv("IDV_ENDPOINT")
	cfg.Provider.ClientID = os.Getenv("IDV_CLIENT_ID")
	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Read(data []byte) (*Config, error) {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("problem reading config: %v", err)
	}

	cfg := Empty()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshaling config: %v", err)
	}

	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *Config) *Config {
	if strings.EqualFold(cfg.Logging.Format, "json") {
		cfg.Logger = log.NewJSONLogger(os.Stderr)
	} else {
		cfg.Logger = log.NewLogfmtLogger(os.Stderr)
	}

	cfg.Logger = log.With(cfg.Logger, "ts", log.DefaultTimestampUTC)
	cfg.Logger = log.With(cfg.Logger, "caller", log.DefaultCaller)
	cfg.Logger = level.NewFilter(cfg.Logger, levelOption(cfg.Logging.Level))

	return cfg
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	}
	return level.AllowInfo()
}

// Validate checks a Config fields and performs various confirmations
// their values conform to expectations.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("missing Config")
	}

	var el base.ErrorList
	if err := cfg.Provider.Validate(); err != nil {
		el.Add(fmt.Errorf("provider: %v", err))
	}
	if err := cfg.Events.Validate(); err != nil {
		el.Add(fmt.Errorf("events: %v", err))
	}
	if err := cfg.Notifications.Validate(); err != nil {
		el.Add(fmt.Errorf("notifications: %v", err))
	}
	if err := cfg.Tracing.Validate(); err != nil {
		el.Add(fmt.Errorf("tracing: %v", err))
	}
	return el.Err()
}
