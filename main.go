package main

import (
	"cs-balancer/balancer"
	"cs-balancer/config"
	"cs-balancer/formatter"
	"cs-balancer/metrics"
	"cs-balancer/parser"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Define flags; config values act as defaults
	input := flag.String("input", "", "Input roster CSV file (required)")
	format := flag.String("format", cfg.Output.Format, "Output format: text|json|csv")
	metricsAddr := flag.String("metrics-addr", cfg.Metrics.Addr, "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", cfg.Metrics.PushURL, "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", cfg.Metrics.Wait, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	cfg.Output.Format = *format
	cfg.Metrics.Addr = *metricsAddr
	cfg.Metrics.PushURL = *pushGateway
	cfg.Metrics.Wait = *wait

	// Start metrics server if address provided
	if cfg.Metrics.Addr != "" {
		metrics.RegisterRuntime()
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			slog.Info("metrics server listening", "addr", cfg.Metrics.Addr, "path", "/metrics")
			if err := http.ListenAndServe(cfg.Metrics.Addr, nil); err != nil {
				slog.Error("metrics server error", "error", err)
			}
		}()
	}

	// Validate required input flag
	if *input == "" {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Open input file
	file, err := os.Open(*input)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	roster, err := parser.Parse(file)
	if err != nil {
		fmt.Printf("Error parsing file: %v\n", err)
		os.Exit(1)
	}

	result := balancer.Balance(roster.Agents, roster.Customers, roster.Away)
	slog.Debug("balancing finished",
		"agents", len(roster.Agents),
		"customers", len(roster.Customers),
		"away", len(result.Excluded),
		"unassigned", len(result.Unassigned),
		"winner", result.WinnerID,
	)

	// Output based on format
	switch cfg.Output.Format {
	case "json":
		fmt.Println(formatter.FormatJSON(result))
	case "csv":
		fmt.Print(formatter.FormatCSV(result))
	default: // "text"
		fmt.Print(formatter.FormatText(result))
	}

	// Handle metrics pushing or waiting
	if cfg.Metrics.PushURL != "" {
		if err := push.New(cfg.Metrics.PushURL, cfg.Metrics.PushJob).Gatherer(metrics.Registry).Push(); err != nil {
			slog.Error("push to pushgateway failed", "url", cfg.Metrics.PushURL, "error", err)
		} else {
			slog.Info("metrics pushed to pushgateway", "url", cfg.Metrics.PushURL, "job", cfg.Metrics.PushJob)
		}
	}

	if cfg.Metrics.Wait && cfg.Metrics.Addr != "" {
		slog.Info("process kept alive for metric scraping, press Ctrl+C to exit")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		slog.Info("exiting")
	} else if cfg.Metrics.Addr != "" && cfg.Metrics.PushURL == "" {
		// Small delay to allow final scrape if not waiting explicitly
		time.Sleep(100 * time.Millisecond)
	}
}
