package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/guimove/placer/internal/placement"
	"github.com/guimove/placer/internal/scheduling"
	"github.com/guimove/placer/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Run placer as a long-lived HTTP service instrumented with Prometheus metrics",
	Long: `Starts an HTTP server exposing POST /schedule (accepts the same bundle
JSON as "placer schedule") and GET /metrics (Prometheus exposition format),
so every Schedule call against the configured manager backend is observed
by placer_schedule_duration_seconds and placer_schedule_result_total.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if !cfg.Telemetry.Enabled {
		return fmt.Errorf("telemetry.enabled is false; set it (or PLACER_TELEMETRY_ENABLED=true) before running serve-metrics")
	}

	ctx := context.Background()

	mgr, err := buildManager(ctx)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	sched := telemetry.Wrap(scheduling.NewScheduler(mgr), metrics)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/schedule", scheduleHandler(sched))

	klog.Infof("placer serve-metrics: listening on %s", cfg.Telemetry.Listen)
	server := &http.Server{
		Addr:         cfg.Telemetry.Listen,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Scheduling.Timeout + 10*time.Second,
	}
	return server.ListenAndServe()
}

type scheduleRequest struct {
	Bundle []demandSpec `json:"bundle"`
	Policy string       `json:"policy"`
}

func scheduleHandler(sched *telemetry.InstrumentedScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req scheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
			return
		}

		policy, err := scheduling.ParsePolicy(req.Policy)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		bundle := make(placement.Bundle, len(req.Bundle))
		for i, d := range req.Bundle {
			bundle[i] = d.toVector()
		}

		ctx, cancel := context.WithTimeout(r.Context(), cfg.Scheduling.Timeout)
		defer cancel()

		result, err := sched.Schedule(ctx, bundle, policy, nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
