package main

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/nilami/api-server/internals/auth"
	"github.com/nilami/api-server/pkg/conf"
	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/kvstore"
	"github.com/nilami/api-server/pkg/metrics"
)

type App struct {
	Cfg      *viper.Viper
	Store    datastore.Store
	KVStore  kvstore.KVStore
	R        *chi.Mux
	WS       map[*websocket.Conn]WSDetails
	ClientsM sync.Mutex
	Metrics  *metrics.Metrics
	Auth     *auth.AuthService
}

func main() {
	cfg, err := conf.Config(".")
	failOnError(err, "Failed to load config")

	app := &App{
		Cfg: cfg,
		WS:  make(map[*websocket.Conn]WSDetails),
	}
	app.initLogger()

	store, err := app.initStore()
	failOnError(err, "Failed to initialize datastore")
	app.Store = store
	defer store.Close()

	app.KVStore = app.initKVStore()
	app.Metrics = metrics.New()
	app.Auth = auth.New(
		app.KVStore,
		cfg.GetString("admin.username"),
		cfg.GetString("admin.password"),
		cfg.GetString("jwt.secret"),
		cfg.GetDuration("jwt.ttl"),
	)

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.GetStringSlice("server.cors_origins"),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(app.RequestLogger)

	app.R = r
	app.initHandlers()

	addr := cfg.GetString("server.addr")
	log.Info().
		Str("addr", addr).
		Str("store", cfg.GetString("store.backend")).
		Msg("api server listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
