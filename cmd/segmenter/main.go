package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gcbaptista/go-word-segmenter/api"
	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/analytics"
	"github.com/gcbaptista/go-word-segmenter/internal/engine"
)

func main() {
	// Define command-line flags
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "", "Port to run the server on (overrides SEGMENTER_PORT)")
		dataDir = flag.String("data-dir", "", "Directory to store dictionaries (overrides SEGMENTER_DATA_DIR)")
		envFile = flag.String("env-file", ".env", "Environment file loaded before reading SEGMENTER_* variables")

		text       = flag.String("text", "", "Segment this text once and exit instead of serving HTTP")
		dictFile   = flag.String("dict", "", "Dictionary file for --text (jieba dict.txt lines, or YAML when ending in .yaml/.yml)")
		mode       = flag.String("mode", "all", "Segmentation mode for --text: all, full or best")
		rank       = flag.Bool("rank", false, "Order --text results by score (mode all)")
		maxResults = flag.Int("max-results", config.DefaultMaxResults, fmt.Sprintf("Result budget for --text in mode all (0 prints up to %d)", config.HardMaxResults))
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Word Segmenter - exhaustive dictionary-based word segmentation\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                      # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                          # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --text 常经有意见分歧 --dict dict.txt   # Print every segmentation and exit\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Word Segmenter v%s\n", api.Version)
		return
	}

	if *text != "" || *dictFile != "" {
		opts := oneShotOptions{
			Text:       *text,
			DictFile:   *dictFile,
			Mode:       *mode,
			Rank:       *rank,
			MaxResults: *maxResults,
		}
		if err := runOneShot(os.Stdout, opts); err != nil {
			log.Fatalf("Segmentation failed: %v", err)
		}
		return
	}

	if err := godotenv.Load(*envFile); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Could not load env file %s: %v", *envFile, err)
		}
	} else {
		log.Printf("Loaded environment from %s", *envFile)
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	// Initialize the segmentation engine
	log.Printf("Using data directory: %s", cfg.DataDir)
	segmenter := engine.NewEngineWithWorkers(cfg.DataDir, cfg.MaxWorkers)
	defer segmenter.Close()

	analyticsService := analytics.NewService(segmenter, filepath.Join(cfg.DataDir, analytics.AnalyticsFileName))
	defer analyticsService.Close()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.CORSMiddleware())
	router.Use(api.RateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	router.Use(api.RequestSizeLimitMiddleware(cfg.MaxRequestBytes))

	// Setup API routes
	api.SetupRoutesWithAnalytics(router, segmenter, analyticsService)

	// Start the server
	log.Printf("Starting server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
