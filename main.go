package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/finboard/finboard/internal/app"
	"github.com/finboard/finboard/internal/config"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func init() {
	// .env only feeds the process environment, real variables still win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("failed to load .env file: %v", err)
	}

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.NewApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
