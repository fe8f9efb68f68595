package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/payforge/checkout/internal/application/builder"
	"github.com/payforge/checkout/internal/application/dispatch"
	"github.com/payforge/checkout/internal/application/orchestrator"
	"github.com/payforge/checkout/internal/config"
	"github.com/payforge/checkout/internal/infrastructure/eventbus"
	httptransport "github.com/payforge/checkout/internal/infrastructure/http"
	"github.com/payforge/checkout/internal/infrastructure/id"
	"github.com/payforge/checkout/internal/infrastructure/memory"
	"github.com/payforge/checkout/internal/infrastructure/observability/oteltrace"
	"github.com/payforge/checkout/internal/infrastructure/observability/prometrics"
	"github.com/payforge/checkout/internal/infrastructure/observability/telemetry"
	"github.com/payforge/checkout/internal/infrastructure/observability/zaplogger"
	"github.com/payforge/checkout/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := zaplogger.New(
		observability.F("service", cfg.ServiceName),
		observability.F("env", cfg.Env),
	)

	registry := prometrics.New("", "")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			string(observability.MHTTPRequests),
			"Total number of HTTP requests.",
			"method", "route", "status",
		),
		observability.MStaleResultsDropped: registry.Counter(
			string(observability.MStaleResultsDropped),
			"Count of superseded build results that were discarded.",
		),
		observability.MDispatchSubmissions: registry.Counter(
			string(observability.MDispatchSubmissions),
			"Count of prepared requests forwarded to the transport collaborator.",
			"outcome",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			prometheus.DefBuckets,
			"use_case",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			string(observability.MHTTPRequestDuration),
			"Duration of HTTP request handling in seconds.",
			prometheus.DefBuckets,
			"method", "route", "status",
		),
	}
	tel := telemetry.New(oteltrace.New(cfg.ServiceName), logger, counters, histograms)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := eventbus.NewBus(logger)
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	currencySupport := memory.NewCurrencySupport(cfg.SupportedCurrencies...)
	buildUC := builder.NewBuildRequestUseCase(currencySupport, id.NewUUIDGenerator(), cfg.RequiredMetadata, tel)
	orch := orchestrator.New(buildUC, bus, tel)

	submitter := memory.NewSubmitter()
	dispatchWorker := dispatch.New(bus, submitter, tel)
	dispatchWorker.Start()

	handler := httptransport.NewHandler(orch)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httptransport.ObservabilityMiddleware(tel)(handler.Router()))

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http_server_start",
			observability.F("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server_error",
			observability.F("error", err.Error()),
		)
		return
	}
	logger.Info("http_server_stopped")
}
