// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paywell/kycgate"
	"github.com/paywell/kycgate/pkg/events"
	"github.com/paywell/kycgate/pkg/idv"
	"github.com/paywell/kycgate/pkg/notify"
	"github.com/paywell/kycgate/pkg/verification"
	"github.com/paywell/kycgate/x/route"
	"github.com/paywell/kycgate/x/trace"

	"github.com/gorilla/mux"
	"github.com/moov-io/base/admin"
	"github.com/moov-io/base/k8s"
)

var (
	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
)

func main() {
	flag.Parse()

	cfg := readConfig(configPath())
	cfg.Logger.Log("startup", fmt.Sprintf("Starting kycgate server version %s", kycgate.Version))
	if k8s.Inside() {
		cfg.Logger.Log("startup", "running inside kubernetes")
	}

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	_, tracerCloser, err := trace.NewTracer(cfg.Logger, cfg.Tracing)
	if err != nil {
		panic(fmt.Sprintf("problem creating tracer: %v", err))
	}
	defer tracerCloser.Close()

	// Spin up admin HTTP server
	adminServer := admin.NewServer(cfg.Admin.BindAddress)
	adminServer.AddVersionHandler(kycgate.Version) // Setup 'GET /version'
	go func() {
		cfg.Logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			cfg.Logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	httpClient, err := route.TLSHttpClient(cfg.Provider.CAFile, cfg.Provider.Timeout)
	if err != nil {
		panic(fmt.Sprintf("problem creating TLS ready *http.Client: %v", err))
	}
	idvClient := idv.NewClient(cfg.Logger, cfg.Provider, httpClient)

	publisher, err := events.NewPublisher(cfg.Logger, cfg.Events)
	if err != nil {
		panic(fmt.Sprintf("problem creating events publisher: %v", err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := publisher.Shutdown(ctx); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}()

	notifier, err := notify.NewMultiSender(cfg.Logger, cfg.Notifications)
	if err != nil {
		panic(fmt.Sprintf("problem creating notifications: %v", err))
	}

	svc := verification.NewService(cfg.Logger, idvClient, publisher, notifier)

	// Create HTTP handler
	handler := mux.NewRouter()
	route.PingRoute(cfg.Logger, handler)
	webhooks, err := verification.NewRouter(cfg.Logger, svc)
	if err != nil {
		panic(fmt.Sprintf("problem creating webhook router: %v", err))
	}
	webhooks.RegisterRoutes(handler)

	// Create main HTTP server
	serve := &http.Server{
		Addr:    cfg.Http.BindAddress,
		Handler: handler,
		TLSConfig: &tls.Config{
			InsecureSkipVerify:       false,
			PreferServerCipherSuites: true,
			MinVersion:               tls.VersionTLS12,
		},
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}
	defer shutdownServer()

	// Start main HTTP server
	go func() {
		if certFile, keyFile := os.Getenv("HTTPS_CERT_FILE"), os.Getenv("HTTPS_KEY_FILE"); certFile != "" && keyFile != "" {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for secure HTTP server", serve.Addr))
			if err := serve.ListenAndServeTLS(certFile, keyFile); err != nil {
				cfg.Logger.Log("exit", err)
			}
		} else {
			cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for HTTP server", serve.Addr))
			if err := serve.ListenAndServe(); err != nil {
				cfg.Logger.Log("exit", err)
			}
		}
	}()

	if err := <-errs; err != nil {
		cfg.Logger.Log("exit", err)
	}
}
