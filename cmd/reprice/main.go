package main

import (
	"benritz/cashflows/internal/config"
	"benritz/cashflows/internal/reprice"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/pbnjay/grate/simple"
	_ "github.com/pbnjay/grate/xls"
	_ "github.com/pbnjay/grate/xlsx"
)

func main() {
	configPath := flag.String("config", "book.yaml", "the book to price (YAML)")
	envPath := flag.String("env", ".env", "optional .env file loaded before the environment is read")
	once := flag.Bool("once", false, "price the book once and exit instead of running on the schedule")
	helpFlag := flag.Bool("help", false, "print this help message")
	flag.Parse()

	if *helpFlag {
		fmt.Printf("Usage: %s <flags>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*configPath, *envPath, *once); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func run(configPath, envPath string, once bool) error {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("failed to load %s: %w", envPath, err)
		}
		log.Printf("[INFO] loaded .env from %s", envPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := reprice.NewJob(cfg)

	if once {
		date := time.Now().UTC().Truncate(24 * time.Hour)
		_, _, err := job.Run(ctx, date)
		return err
	}

	s := reprice.NewScheduler(ctx, job)
	if err := s.Register(cfg.Schedule); err != nil {
		return err
	}

	s.Start()
	log.Printf("[INFO] repricing %s on %q (press Ctrl+C to stop)", cfg.Name, cfg.Schedule)

	<-ctx.Done()
	s.Stop()

	return nil
}
