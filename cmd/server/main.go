package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fracshare/rwaledger/internal/config"
	"github.com/fracshare/rwaledger/internal/service"
)

var (
	version   = "0.1.0"
	buildTime = "unknown"
	gitCommit = "unknown"

	configPath = flag.String("config", "config.yaml", "path to configuration file")
	showHelp   = flag.Bool("help", false, "show help message")
	showVer    = flag.Bool("version", false, "show version information")
)

func main() {
	flag.Parse()

	if *showHelp {
		printHelp()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	// Optional .env for local development; environment always wins.
	_ = godotenv.Load()

	cfg := config.MustLoad(*configPath, "RWALEDGER")
	logger := config.NewLogger(cfg.Log, cfg.Service.Name)

	logger.Info().
		Str("version", version).
		Str("build_time", buildTime).
		Str("git_commit", gitCommit).
		Str("environment", cfg.Service.Env).
		Msg("Starting rwaledger service")

	svc, err := service.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize service")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("Service failed")
		os.Exit(1)
	}

	logger.Info().Msg("rwaledger service stopped")
}

func printHelp() {
	fmt.Fprintf(os.Stdout, "rwaledger - Fractional RWA Ownership Ledger\n\n")
	fmt.Fprintf(os.Stdout, "An HTTP service tracking tokenized real-world assets, token lots,\n")
	fmt.Fprintf(os.Stdout, "and the trade lifecycle between participants.\n\n")
	fmt.Fprintf(os.Stdout, "USAGE:\n")
	fmt.Fprintf(os.Stdout, "    rwaledger [OPTIONS]\n\n")
	fmt.Fprintf(os.Stdout, "OPTIONS:\n")
	fmt.Fprintf(os.Stdout, "    -config <path>     Path to configuration file (default: config.yaml)\n")
	fmt.Fprintf(os.Stdout, "    -help              Show this help message\n")
	fmt.Fprintf(os.Stdout, "    -version           Show version information\n\n")
	fmt.Fprintf(os.Stdout, "ENVIRONMENT VARIABLES:\n")
	fmt.Fprintf(os.Stdout, "    RWALEDGER_SERVER_HTTP_PORT   HTTP listen port\n")
	fmt.Fprintf(os.Stdout, "    RWALEDGER_LOG_LEVEL          Log level (debug, info, warn, error)\n")
	fmt.Fprintf(os.Stdout, "    RWALEDGER_LOG_FILE           Rotating log file path (stderr if unset)\n")
}

func printVersion() {
	fmt.Fprintf(os.Stdout, "rwaledger %s\n", version)
	fmt.Fprintf(os.Stdout, "Build Time: %s\n", buildTime)
	fmt.Fprintf(os.Stdout, "Git Commit: %s\n", gitCommit)
}
