// Command blsbatchd is a minimal host for a batchverify.WorkerRuntime: it
// starts one runtime, serves its Prometheus metrics over HTTP, and exits
// cleanly on SIGINT/SIGTERM. It exists to give the engine a runnable home,
// not as a production validator client.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prysmaticlabs/bls-batch-verifier/batchverify"
	"github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
)

var log = logrus.WithField("prefix", "blsbatchd")

func main() {
	metricsAddr := flag.String("metrics-address", ":9191", "address to serve /metrics on")
	minPerChunk := flag.Int("batchable-min-per-chunk", batchverify.DefaultBatchableMinPerChunk, "chunk weight (in signature sets) at which the chunker closes a chunk; a smaller final chunk is still batch-verified")
	flag.Parse()

	runtime := batchverify.NewWorkerRuntime(&batchverify.Config{
		BatchableMinPerChunk: *minPerChunk,
	})
	defer runtime.Stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := &http.Server{Addr: *metricsAddr, Handler: mux}

	go func() {
		log.WithField("endpoint", *metricsAddr).Info("serving metrics")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server stopped unexpectedly")
		}
	}()

	// Demonstrate one round trip so the process has something to log
	// before it blocks waiting for a shutdown signal.
	if res, err := runtime.Submit(context.Background(), nil); err != nil {
		log.WithError(err).Error("startup self-check submit failed")
	} else {
		log.WithField("metrics", res.Metrics).Debug("startup self-check ok")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("metrics server did not shut down cleanly")
	}
}
