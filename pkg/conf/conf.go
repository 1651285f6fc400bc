package conf

import (
	"strings"

	"github.com/spf13/viper"
)

// Config loads conf.yaml from path. Every key can be overridden from the
// environment with the NILAMI_ prefix and dots replaced by underscores, e.g.
// NILAMI_STORE_BACKEND=postgres. A missing file is not an error; defaults plus
// environment cover a dev run.
func Config(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvPrefix("nilami")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.dsn", "host=localhost user=postgres password=postgres dbname=nilami port=5432 sslmode=disable")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("jwt.secret", "dev-only-secret")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return v, nil
}
