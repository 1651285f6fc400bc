package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/kvstore"
)

func failOnError(err error, msg string) {
	if err != nil {
		log.Panic().Err(err).Msg(msg)
	}
}

func (app *App) initLogger() {
	if app.Cfg.GetBool("log.pretty") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level, err := zerolog.ParseLevel(app.Cfg.GetString("log.level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func (app *App) initStore() (datastore.Store, error) {
	backend := app.Cfg.GetString("store.backend")
	switch backend {
	case "postgres":
		return datastore.NewPostgresStore(app.Cfg.GetString("store.dsn"))
	case "memory":
		return datastore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// initKVStore falls back to the in-process store when redis is disabled or
// unreachable; sessions then live only as long as the process.
func (app *App) initKVStore() kvstore.KVStore {
	if !app.Cfg.GetBool("redis.enabled") {
		return kvstore.NewMemory()
	}

	kv, err := kvstore.NewRedis(
		app.Cfg.GetString("redis.addr"),
		app.Cfg.GetString("redis.password"),
		app.Cfg.GetInt("redis.db"),
	)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory kv store")
		return kvstore.NewMemory()
	}
	return kv
}
