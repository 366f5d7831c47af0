// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package route

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"strings"
	"time"
)

// TLSHttpClient returns an http.Client trusting the system roots and the
// optional PEM bundle at path.
func TLSHttpClient(path string, timeout time.Duration) (*http.Client, error) {
	tlsConfig := &tls.Config{}
	pool, err := x509.SystemCertPool()
	if pool == nil || err != nil {
		pool = x509.NewCertPool()
	}

	// read extra CA file
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("problem reading %s: %v", path, err)
		}
		ok := pool.AppendCertsFromPEM(bs)
		if !ok {
			return nil, fmt.Errorf("couldn't parse PEM in: %s", path)
		}
	}
	tlsConfig.RootCAs = pool

	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig:     tlsConfig,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			MaxConnsPerHost:     100,
			IdleConnTimeout:     1 * time.Minute,
		},
	}, nil
}

var (
	remoteAddrHeaderName = func() string {
		if v := os.Getenv("REMOTE_ADDRESS_HEADER"); v != "" {
			return v
		}
		return "X-Real-Ip"
	}()
)

// RemoteAddr attempts to return the real IP address for a set of request headers.
// This relies on proxies infront of kycgate to set the X-Real-Ip header.
func RemoteAddr(h http.Header) string {
	return remoteAddr(h, remoteAddrHeaderName)
}

func remoteAddr(h http.Header, headerName string) string {
	if v := h.Get(headerName); v != "" {
		parts := strings.Split(v, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	return ""
}
