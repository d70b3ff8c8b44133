package main

import (
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tokenhud/internal/auth"
	"tokenhud/internal/handlers"
	"tokenhud/internal/hud"
	"tokenhud/internal/provider"
	"tokenhud/internal/scene"
	"tokenhud/internal/settings"
	"tokenhud/views"
)

type config struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	BaseURL    string `env:"BASE_URL"`
	DataDir    string `env:"DATA_DIR" envDefault:"data"`
	SettingsDB string `env:"SETTINGS_DB" envDefault:"data/settings.db"`
}

func main() {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	authSvc, err := auth.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	settingsStore, err := settings.Open(cfg.SettingsDB)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}
	defer settingsStore.Close()

	scenes := scene.NewStore()
	registry := hud.NewRegistry(provider.DefaultProviders(provider.ActorStances{}, provider.HeroPointDeck{})...)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal(err)
	}

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	sceneHandler := handlers.NewSceneHandler(scenes, authSvc, cfg.BaseURL)
	hudHandler := handlers.NewHudHandler(scenes, settingsStore, authSvc, registry, views.Renderer{}, log.Default())

	sceneHandler.RegisterRoutes(r)
	hudHandler.RegisterRoutes(r)

	// No ReadTimeout or WriteTimeout: the HUD websocket holds its connection
	// open for the whole session.
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("listening on http://localhost%s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

//go:embed static/*
var embeddedStatic embed.FS
