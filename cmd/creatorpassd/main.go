package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"creatorpass/config"
	"creatorpass/core/events"
	"creatorpass/core/state"
	"creatorpass/native/platform"
	"creatorpass/observability"
	"creatorpass/observability/logging"
	"creatorpass/rpc"
	"creatorpass/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("CREATORPASS_ENV"))
	logger := logging.Setup("creatorpassd", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	admin, err := cfg.Admin()
	if err != nil {
		logger.Error("invalid administrator address", slog.Any("error", err))
		os.Exit(1)
	}
	unitPrice, err := cfg.UnitPrice()
	if err != nil {
		logger.Error("invalid unit price", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "state"))
	if err != nil {
		logger.Error("failed to open state database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	recorder := events.NewRecorder(cfg.EventLogSize)
	engine := platform.NewEngine()
	engine.SetState(state.NewManager(db))
	engine.SetEmitter(events.Fanout{recorder, observability.NewLogEmitter(logger)})
	engine.SetVault(vaultAddress(cfg))
	if err := engine.Initialize(admin.Array(), unitPrice); err != nil {
		logger.Error("failed to initialise platform engine", slog.Any("error", err))
		os.Exit(1)
	}

	go serveMetrics(cfg.MetricsAddress, logger)

	logger.Info("creatorpass node ready",
		slog.String("network", cfg.NetworkName),
		slog.String("admin", admin.String()),
		slog.String("unitPrice", unitPrice.String()),
	)
	server := rpc.NewServer(engine, recorder, logger)
	server.SetRateLimit(cfg.RPCRequestsPerMinute)
	if err := server.Start(cfg.ListenAddress); err != nil {
		logger.Error("JSON-RPC server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

// vaultAddress resolves the vault account: the configured address when set,
// otherwise a deterministic address derived from the network name so every
// node of a network agrees on where purchase proceeds accumulate.
func vaultAddress(cfg *config.Config) [20]byte {
	if addr, ok, err := cfg.Vault(); err == nil && ok {
		return addr.Array()
	}
	seed := fmt.Sprintf("creatorpass/vault/%s", cfg.NetworkName)
	hashed := ethcrypto.Keccak256([]byte(seed))
	var out [20]byte
	copy(out[:], hashed[12:])
	return out
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting metrics server", slog.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		logger.Error("metrics server stopped", slog.Any("error", err))
	}
}
