// Package main provides a long-running distribution service:
// - Distribution (scheduled): load holders, compute allocations, persist runs
// - Reporting: DISTRIBUTION_REPORT.md and ALLOCATIONS.csv per run
// - HTTP: /health, /metrics (Prometheus), /status
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"solana-rewards-lab/internal/domain"
	"solana-rewards-lab/internal/observability"
	"solana-rewards-lab/internal/reporting"
	"solana-rewards-lab/internal/rewards"
	"solana-rewards-lab/internal/storage"
	chstore "solana-rewards-lab/internal/storage/clickhouse"
	"solana-rewards-lab/internal/storage/memory"
	"solana-rewards-lab/internal/storage/migrations"
	pgstore "solana-rewards-lab/internal/storage/postgres"
)

// Server holds all components of the distribution service.
type Server struct {
	// Configuration
	launchTime  time.Time
	minBalance  float64
	maxBalance  float64
	treasury    float64
	feeReserve  float64
	outputDir   string
	runInterval time.Duration

	// Stores
	stores *allStores

	logger *log.Logger

	// State
	mu         sync.Mutex
	lastRun    time.Time
	lastRunID  string
	runRunning bool
	started    time.Time

	// Stats
	runs int
}

// allStores holds all storage implementations.
type allStores struct {
	holderStore     storage.HolderStore
	runStore        storage.DistributionRunStore
	allocationStore storage.AllocationStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	launchTime := flag.String("launch-time", os.Getenv("LAUNCH_TIME"), "Token launch time (RFC3339)")
	minBalance := flag.Float64("min-balance", 20000, "Minimum token balance for eligibility")
	maxBalance := flag.Float64("max-balance", 1e9, "Maximum token balance for eligibility (whale cap)")
	treasury := flag.Float64("treasury", 0, "Total treasury to distribute per run")
	feeReserve := flag.Float64("fee-reserve", 0.05, "Fraction of treasury held back, in [0, 1)")
	outputDir := flag.String("output-dir", "output", "Output directory for reports")
	runInterval := flag.Duration("run-interval", 1*time.Hour, "Distribution run interval")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *launchTime == "" {
		logger.Fatal("--launch-time is required (RFC3339, e.g. 2024-06-01T12:00:00Z)")
	}
	launch, err := time.Parse(time.RFC3339, *launchTime)
	if err != nil {
		logger.Fatalf("Invalid --launch-time: %v", err)
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Create server
	server := &Server{
		launchTime:  launch,
		minBalance:  *minBalance,
		maxBalance:  *maxBalance,
		treasury:    *treasury,
		feeReserve:  *feeReserve,
		outputDir:   *outputDir,
		runInterval: *runInterval,
		stores:      stores,
		logger:      logger,
		started:     time.Now(),
	}

	// Channel to signal completion
	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	// Start HTTP server
	go server.startHTTPServer(*metricsAddr)

	// Run the distribution scheduler
	err = server.Run(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			holderStore:     memory.NewHolderStore(),
			runStore:        memory.NewDistributionRunStore(),
			allocationStore: memory.NewAllocationStore(),
		}
		return stores, func() {}, nil
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	// ClickHouse
	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
	}

	stores := &allStores{
		holderStore:     pgstore.NewHolderStore(pool),
		runStore:        pgstore.NewDistributionRunStore(pool),
		allocationStore: chstore.NewAllocationStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// Run starts the distribution scheduler.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Printf("Starting distribution scheduler (interval: %v)...", s.runInterval)

	// Run immediately on start
	s.runDistribution(ctx)

	ticker := time.NewTicker(s.runInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runDistribution(ctx)
		}
	}
}

// runDistribution executes one distribution run end to end.
func (s *Server) runDistribution(ctx context.Context) {
	s.mu.Lock()
	if s.runRunning {
		s.mu.Unlock()
		s.logger.Println("Distribution already running, skipping...")
		return
	}
	s.runRunning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.runRunning = false
		s.lastRun = time.Now()
		s.runs++
		s.mu.Unlock()
	}()

	s.logger.Println("Running distribution...")
	start := time.Now()

	records, err := s.stores.holderStore.GetAll(ctx)
	if err != nil {
		s.logger.Printf("Failed to load holders: %v", err)
		observability.RecordRun("error", time.Since(start).Seconds())
		return
	}

	params := domain.RunParams{
		MinBalance:       s.minBalance,
		MaxBalance:       s.maxBalance,
		TreasuryTotal:    s.treasury,
		FeeReserve:       s.feeReserve,
		HoursSinceLaunch: time.Since(s.launchTime).Hours(),
	}

	result, err := rewards.ExecuteRun(records, params, start.UnixMilli())
	if err != nil {
		s.logger.Printf("Distribution error: %v", err)
		observability.RecordRun("error", time.Since(start).Seconds())
		return
	}

	if err := s.stores.runStore.Insert(ctx, result.Run); err != nil {
		s.logger.Printf("Failed to persist run: %v", err)
		observability.RecordRun("error", time.Since(start).Seconds())
		return
	}
	if err := s.stores.allocationStore.InsertBulk(ctx, result.Rows); err != nil {
		s.logger.Printf("Failed to persist allocations: %v", err)
		observability.RecordRun("error", time.Since(start).Seconds())
		return
	}

	if err := s.writeReports(result); err != nil {
		s.logger.Printf("Failed to write reports: %v", err)
	}

	s.mu.Lock()
	s.lastRunID = result.Run.RunID
	s.mu.Unlock()

	disqualified := result.Stats.TotalHolders - result.Stats.QualifiedCount
	observability.RecordRun("success", time.Since(start).Seconds())
	observability.RecordRunCounts(result.Run.HolderCount, disqualified, result.Run.AllocationCount, result.Run.TotalDistributed)
	observability.RecordDustFiltered(result.DustFiltered)
	observability.MarkRunSuccess(time.Now().Unix())

	s.logger.Printf("Distribution %s completed in %v: %d holders, %d allocations, %.6f distributed",
		result.Run.RunID, time.Since(start),
		result.Run.HolderCount, result.Run.AllocationCount, result.Run.TotalDistributed)
}

// writeReports renders the Markdown report and allocation CSV.
func (s *Server) writeReports(result *rewards.RunResult) error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	report := reporting.Compose(result.Run, result.Rows, time.Now().UTC())

	mdPath := filepath.Join(s.outputDir, "DISTRIBUTION_REPORT.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	csvPath := filepath.Join(s.outputDir, "ALLOCATIONS.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.Allocations)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	return nil
}

// startHTTPServer starts the HTTP server for health/metrics/status.
func (s *Server) startHTTPServer(addr string) {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("/metrics", observability.Handler())

	// Status endpoint
	mux.HandleFunc("/status", s.handleStatus)

	s.logger.Printf("Starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		s.logger.Printf("HTTP server error: %v", err)
	}
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status     string    `json:"status"`
	Uptime     string    `json:"uptime"`
	LastRun    time.Time `json:"last_run,omitempty"`
	LastRunID  string    `json:"last_run_id,omitempty"`
	Runs       int       `json:"runs"`
	RunRunning bool      `json:"run_running"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := StatusResponse{
		Status:     "running",
		Uptime:     time.Since(s.started).String(),
		LastRun:    s.lastRun,
		LastRunID:  s.lastRunID,
		Runs:       s.runs,
		RunRunning: s.runRunning,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
