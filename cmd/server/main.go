package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-session-keeper/internal/config"
	handlerhttp "github.com/MKhiriev/go-session-keeper/internal/handler/http"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/server"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("session-keeper-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to credential store")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	redisClient, err := session.NewRedisClient(ctx, cfg.Session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to session store")
	}
	defer redisClient.Close()

	tokens := session.NewTokenCodec(cfg.App.CookieSignKey)
	flash := session.NewFlashCodec(cfg.App.CookieSignKey)
	sessions := session.NewManager(redisClient, tokens, log)

	repositories := store.NewRepositories(db, log)
	services := service.NewServices(repositories, sessions, log)

	handler := handlerhttp.NewHandler(services, sessions, flash, cfg.IsProduction(), cfg.Server.RequestTimeout, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
