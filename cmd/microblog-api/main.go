package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"microblog/internal/app"
	"microblog/internal/config"
)

func main() {
	envFile := flag.String("env", "", "Environment file to load before reading the configuration (e.g. .env)")
	configFile := flag.String("config", "", "YAML configuration file; environment variables override its values")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("Warning: failed to load env file %s: %v", *envFile, err)
		}
	}

	container, err := app.BuildContainer(*configFile)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = container.Invoke(func(cfg *config.Config, logger *logrus.Logger, application *app.Application) error {
		logger.WithField("config", cfg.String()).Info("Configuration loaded")
		fmt.Printf("Server starting on http://localhost%s\n", cfg.Port)
		return application.Run(ctx)
	})
	if err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
