// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"strconv"
	"time"

	"github.com/paywell/kycgate/pkg/config"

	"github.com/ory/mail/v3"
)

type Email struct {
	cfg    *config.Email
	dialer *mail.Dialer
}

type EmailTemplateData struct {
	Severity    string // e.g. INFO, CRITICAL
	CompanyName string // e.g. Paywell

	Kind       Kind
	Flow       string
	ConsumerID string
	Reference  string
	Detail     string
}

var (
	// Ensure the default template validates against our data struct
	_ = config.DefaultEmailTemplate.Execute(ioutil.Discard, EmailTemplateData{})
)

func NewEmail(cfg *config.Email) (*Email, error) {
	dialer, err := setupMailDialer(cfg)
	if err != nil {
		return nil, err
	}
	return &Email{
		cfg:    cfg,
		dialer: dialer,
	}, nil
}

func setupMailDialer(cfg *config.Email) (*mail.Dialer, error) {
	if cfg == nil {
		return nil, errors.New("email: nil config")
	}
	uri, err := url.Parse(cfg.ConnectionURI)
	if err != nil {
		return nil, fmt.Errorf("email: parsing connection uri: %v", err)
	}
	if uri.Hostname() == "" {
		return nil, errors.New("email: connection uri has no host")
	}
	port := 25
	if p := uri.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("email: invalid port %q", p)
		}
	}
	var user, pass string
	if uri.User != nil {
		user = uri.User.Username()
		pass, _ = uri.User.Password()
	}

	dialer := mail.NewDialer(uri.Hostname(), port, user, pass)
	dialer.SSL = uri.Scheme == "smtps"
	dialer.TLSConfig = &tls.Config{
		ServerName:         uri.Hostname(),
		InsecureSkipVerify: uri.Query().Get("insecure_skip_verify") == "true",
	}
	return dialer, nil
}

func (mailer *Email) Info(msg *Message) error {
	return mailer.send("INFO", msg)
}

func (mailer *Email) Critical(msg *Message) error {
	return mailer.send("CRITICAL", msg)
}

func (mailer *Email) send(severity string, msg *Message) error {
	contents, err := marshalEmail(mailer.cfg, severity, msg)
	if err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetHeader("From", mailer.cfg.From)
	m.SetHeader("To", mailer.cfg.To...)
	m.SetHeader("Subject", fmt.Sprintf("[%s] %s", severity, msg.summary()))
	m.SetBody("text/plain", contents)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := mailer.dialer.DialAndSend(ctx, m); err != nil {
		return fmt.Errorf("email: sending: %v", err)
	}
	return nil
}

func marshalEmail(cfg *config.Email, severity string, msg *Message) (string, error) {
	data := EmailTemplateData{
		Severity:    severity,
		CompanyName: cfg.CompanyName,
		Kind:        msg.Kind,
		Flow:        msg.Flow,
		ConsumerID:  msg.ConsumerID,
		Reference:   msg.Reference,
		Detail:      msg.Detail,
	}

	var buf bytes.Buffer
	if err := cfg.Tmpl().Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
