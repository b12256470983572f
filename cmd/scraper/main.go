package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go-jobscrape-server/internal/app"
	"go-jobscrape-server/internal/config"
	"go-jobscrape-server/internal/reporter"
	"go-jobscrape-server/internal/scraper"
)

func main() {
	engine := flag.String("engine", "", "scrape engine: browser or static (default from config)")
	outDir := flag.String("out", "logs", "directory for the JSON results file, empty to skip")
	notify := flag.Bool("notify", false, "send results to Telegram when configured")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <url-or-keywords>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input == "" {
		flag.Usage()
		os.Exit(2)
	}

	//load config
	cfg := config.Load()
	if *engine != "" {
		cfg.Engine = *engine
		if err := cfg.Validate(); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	s, cleanup, err := app.BuildScraper(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to init scraper: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	jobs, err := s.Scrape(ctx, input)
	stop()
	if cerr := cleanup(); cerr != nil {
		log.Printf("⚠️ Failed to stop playwright: %v", cerr)
	}
	if err != nil {
		log.Fatalf("❌ Failed to scrape jobs: %v", err)
	}
	log.Printf("✅ Scraping complete. Found %d jobs.", len(jobs))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jobs); err != nil {
		log.Fatalf("❌ Failed to write results: %v", err)
	}

	if *outDir != "" {
		saveJobs(*outDir, jobs)
	}

	if *notify && cfg.TelegramEnabled() && len(jobs) > 0 {
		r, err := reporter.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("❌ Failed to init Telegram Bot: %v", err)
		}
		if err := r.NotifyJobs(context.Background(), jobs); err != nil {
			log.Printf("⚠️ Failed to send jobs to Telegram: %v", err)
		}
	}

	log.Println("🏁 Execution finished.")
}

func saveJobs(logDir string, jobs []scraper.Job) {
	if len(jobs) == 0 {
		log.Println("ℹ️ No jobs to save.")
		return
	}

	//create logs directory if not exists
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create logs directory: %v", err)
		return
	}

	//gen filename: job-search-YYYY-MM-DD.json
	filename := fmt.Sprintf("job-search-%s.json", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(logDir, filename)

	data, err := json.MarshalIndent(jobs, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal jobs to JSON: %v", err)
		return
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write logs file: %v", err)
		return
	}

	log.Printf("📁 Results saved to %s", filePath)
}
