package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/maxima-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("maxima-mcp - MCP server for ultimate eroded points analysis")
	fmt.Println()
	fmt.Println("Usage: maxima-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug       Enable debug logging\n", server.EnvLogLevel)
	fmt.Printf("  %s=<n>          Default plateau tolerance (default 0.5)\n", server.EnvTolerance)
	fmt.Printf("  %s=<n>        Sorting-error restart cap, negative for none (default 1000)\n", server.EnvMaxRetries)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("maxima-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown argument: %s\n\n", os.Args[1])
			usage()
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := server.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug {
		log.Printf("Maxima MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("tolerance=%g max_retries=%d", cfg.Tolerance, cfg.MaxRetries)
	}

	if err := server.NewWithConfig(cfg).Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
