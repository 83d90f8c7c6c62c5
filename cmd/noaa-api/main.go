package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noaa-sdk/config"
	v1 "noaa-sdk/internal/controllers/http/v1"
	"noaa-sdk/internal/services/weather"
	"noaa-sdk/pkg/httpserver"
	"noaa-sdk/pkg/logger"
	"noaa-sdk/pkg/ncdc"
	"noaa-sdk/pkg/noaa"
	"noaa-sdk/pkg/observe"
	"noaa-sdk/pkg/osm"
	"noaa-sdk/pkg/transport"
)

// @title NOAA API
// @version 1.0.0
// @description Forecasts, observations, alerts and climate data from the National Weather Service api.weather.gov
// @description and NCDC Climate Data Online, located by postal code through OpenStreetMap nominatim.
// @termsOfService http://swagger.io/terms/

// @contact.name NOAA API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig(config.DefaultPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook, err = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.DSN, cnf.Sentry.Debug)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		writers = append(writers, hook)
	}

	l := logger.NewZapLogger(cnf.App.Name, cnf.App.Env, cnf.Log.Level, writers...)

	httpClient := transport.NewHTTPClient(cnf.NOAA.Timeout)

	client, err := newNOAAClient(cnf, httpClient, l)
	if err != nil {
		l.Fatal("cannot create the api.weather.gov client", map[string]any{"err": err})
	}

	opts := weather.Options{
		MaxRecords: cnf.Observations.MaxRecords,
		Stations:   cnf.Observations.Stations,
	}
	if cnf.NCDC.Token != "" {
		// CDO answers errors with meaningful statuses, so its calls are not retried.
		cdoTransport := transport.New(httpClient, l, transport.WithRetryPolicy(transport.RetryPolicy{}))
		cdo, err := ncdc.NewClient(cnf.NCDC.Token, cdoTransport)
		if err != nil {
			l.Fatal("cannot create the climate data client", map[string]any{"err": err})
		}
		opts.Climate = cdo
	}

	service := weather.NewWeatherService(client, l, opts)

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  cnf.Server.ReadTimeout,
		WriteTimeout: cnf.Server.WriteTimeout,
		IdleTimeout:  cnf.Server.IdleTimeout,
	})

	v1.NewRouter(
		app,
		service,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"version": cnf.App.Version,
		"noaa":    client.String(),
		"climate": opts.Climate != nil,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}

// newNOAAClient builds the api.weather.gov client. The circuit breaker guards
// api.weather.gov only: nominatim gets its own transport so geocoding failures
// never open it.
func newNOAAClient(cnf *config.Config, httpClient transport.Doer, l *logger.Logger) (*noaa.Client, error) {
	policy := transport.DefaultRetryPolicy()
	policy.MaxRetries = cnf.NOAA.Retries

	doer := httpClient
	if cnf.NOAA.Breaker.Enabled {
		doer = transport.NewBreakerDoer(httpClient, transport.BreakerSettings{
			Name:        cnf.NOAA.Host,
			Failures:    cnf.NOAA.Breaker.Failures,
			OpenTimeout: cnf.NOAA.Breaker.OpenTimeout,
		}, l)
	}

	geocoder := osm.NewClient(transport.New(httpClient, l, transport.WithRetryPolicy(policy)))

	return noaa.New(noaa.Config{
		UserAgent: cnf.NOAA.UserAgent,
		Accept:    noaa.Accept(cnf.NOAA.Accept),
		Verbose:   cnf.NOAA.Verbose,
		Host:      cnf.NOAA.Host,
	},
		noaa.WithHTTPClient(doer),
		noaa.WithGeocoder(geocoder),
		noaa.WithLogger(l),
		noaa.WithRetryPolicy(policy),
	)
}
