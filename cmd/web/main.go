package main

import (
	"context"
	"log"

	"rockspec-notes/internal/bootstrap"
	"rockspec-notes/internal/config"
	"rockspec-notes/internal/server"
	"rockspec-notes/internal/tracer"
	"rockspec-notes/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	// Serving without a signing secret would make every session forgeable.
	if cfg.Session.Secret == "" {
		log.Fatal("SESSION_SECRET must be set")
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	if err := database.Migrate(gormDB); err != nil {
		log.Fatalf("Unable to migrate database: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// Drain note lifecycle events into the activity log.
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Printf("Background consumer error: %v", err)
	}

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
