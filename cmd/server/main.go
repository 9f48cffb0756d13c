package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventcal/internal/api"
	"eventcal/internal/config"
	"eventcal/internal/models"
	"eventcal/internal/repository"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Suppress expected "record not found" logs from lookups that miss.
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		dialector = sqlite.Open(cfg.Database.DSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	users := repository.NewGormUsers(db)
	events := repository.NewGormEvents(db)

	server := api.NewServer(cfg, users, events)

	log.Printf("Starting HTTP server on 0.0.0.0:%s", cfg.HTTP.Port)
	log.Printf("Calendar: http://0.0.0.0:%s/", cfg.HTTP.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.HTTP.Port, server.GetRouter()); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
