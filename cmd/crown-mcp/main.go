package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/crown-tools-mcp/internal/config"
	"github.com/ironsheep/crown-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("crown-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("crown-tools-mcp - MCP server for tree crown detection in canopy height rasters")
			fmt.Println()
			fmt.Println("Usage: crown-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env or $CROWN_ENV_FILE):")
			fmt.Println("  CROWN_MCP_LOG_LEVEL=debug           Enable debug logging")
			fmt.Println("  CROWN_DEFAULT_CUTOFF=15             Minimum canopy height")
			fmt.Println("  CROWN_DEFAULT_LOCAL_MAX_RADIUS=1    Ascent window half-width")
			fmt.Println("  CROWN_DEFAULT_PLATEAU_RADIUS=1      Plateau window half-width")
			fmt.Println("  CROWN_MAX_CHAIN_DEPTH=10000         Plateau chaining limit")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Crown MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Defaults: cutoff=%g local_max_radius=%d plateau_radius=%d max_chain_depth=%d",
			cfg.Defaults.Cutoff, cfg.Defaults.LocalMaxRadius, cfg.Defaults.PlateauRadius, cfg.Defaults.MaxChainDepth)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
