package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vlavrik/flespi-gateway/internal/client"
)

// Variables to hold flag values
var (
	expToken      string
	expDeviceID   int64
	expBaseURL    string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	api    *client.Client
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	// 1. Verify credentials before serving anything.
	log.Println("Verifying gateway credentials...")
	if _, err := p.api.GetDevices(context.Background(), true); err != nil {
		log.Printf("Fatal: credential check failed: %v", err)
		// Exit so the service manager attempts a restart.
		os.Exit(1)
	}
	log.Println("Credentials accepted.")

	// 2. Setup Prometheus
	registry := prometheus.NewRegistry()
	collector := &GatewayCollector{Client: p.api}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Flespi Exporter listening on %s", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR ---

// GatewayCollector scrapes the gateway on every Prometheus pull.
type GatewayCollector struct {
	Client *client.Client
	Mutex  sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"flespi_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"flespi_scrape_duration_seconds", "Time taken to scrape the gateway.", nil, nil,
	)
	devicesTotalDesc = prometheus.NewDesc(
		"flespi_devices_total", "Number of devices visible to the token.", nil, nil,
	)
	telemetryValueDesc = prometheus.NewDesc(
		"flespi_telemetry_value", "Last known value of a numeric telemetry field.", []string{"field"}, nil,
	)
	telemetryAgeDesc = prometheus.NewDesc(
		"flespi_telemetry_age_seconds", "Seconds since a telemetry field was last updated.", []string{"field"}, nil,
	)
)

func (c *GatewayCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- devicesTotalDesc
	ch <- telemetryValueDesc
	ch <- telemetryAgeDesc
}

func (c *GatewayCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0
	ctx := context.Background()

	// 1. Devices
	if devices, err := c.Client.GetDevices(ctx, true); err == nil {
		ch <- prometheus.MustNewConstMetric(devicesTotalDesc, prometheus.GaugeValue, float64(len(devices)))
	} else {
		success = 0.0
		log.Printf("Error scraping devices: %v", err)
	}

	// 2. Telemetry
	if telemetry, err := c.Client.GetTelemetry(ctx); err == nil {
		now := float64(time.Now().Unix())
		for field, v := range telemetry {
			// Only numeric fields translate to gauges.
			if num, ok := v.Value.(float64); ok {
				ch <- prometheus.MustNewConstMetric(telemetryValueDesc, prometheus.GaugeValue, num, field)
			}
			if v.Timestamp > 0 {
				ch <- prometheus.MustNewConstMetric(telemetryAgeDesc, prometheus.GaugeValue, now-v.Timestamp, field)
			}
		}
	} else {
		success = 0.0
		log.Printf("Error scraping telemetry: %v", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes gateway metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Build the client; credentials are validated here.
		api, err := client.New(expDeviceID, expToken)
		if err != nil {
			log.Fatalf("Fatal: %v", err)
		}
		if expBaseURL != "" {
			api.HTTP.SetBaseURL(expBaseURL)
		}

		// 2. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "flespi-exporter",
			DisplayName: "Flespi Prometheus Exporter",
			Description: "Exposes flespi gateway metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--token", expToken,
				"--device", fmt.Sprintf("%d", expDeviceID),
				"--port", expPort,
			},
		}
		if expBaseURL != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--base-url", expBaseURL)
		}

		prg := &program{api: api}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" && expToken == "" {
				log.Fatal("Error: You must provide --token to install the service.")
			}

			if err := service.Control(s, serviceAction); err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)

	exporterCmd.Flags().StringVar(&expToken, "token", "", "Flespi token (64 characters)")
	exporterCmd.Flags().Int64Var(&expDeviceID, "device", 0, "Device identifier to scrape")
	exporterCmd.Flags().StringVar(&expBaseURL, "base-url", "", "Gateway root override")
	exporterCmd.Flags().StringVar(&expPort, "port", "9827", "Port for the /metrics endpoint")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service control action: install, uninstall, start, stop")

	_ = exporterCmd.MarkFlagRequired("token")
}
