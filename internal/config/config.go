package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	DB       DBConfig       `mapstructure:"db"`
	Identity IdentityConfig `mapstructure:"identity"`
	Cron     CronConfig     `mapstructure:"cron"`
	Backfill BackfillConfig `mapstructure:"backfill"`
	Replay   ReplayConfig   `mapstructure:"replay"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type IdentityConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	VerifyTTL    time.Duration `mapstructure:"verify_ttl"`
	AuthDisabled bool          `mapstructure:"auth_disabled"`
}

type CronConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Backfill string `mapstructure:"backfill"`
}

type BackfillConfig struct {
	BatchSize int `mapstructure:"batch_size"`
}

type ReplayConfig struct {
	SeriesPoints int     `mapstructure:"series_points"`
	BasePrice    float64 `mapstructure:"base_price"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TJ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("identity.base_url", "")
	v.SetDefault("identity.timeout", "10s")
	v.SetDefault("identity.verify_ttl", "1m")
	v.SetDefault("identity.auth_disabled", false)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.backfill", "@every 1h")
	v.SetDefault("backfill.batch_size", 200)
	v.SetDefault("replay.series_points", 500)
	v.SetDefault("replay.base_price", 100)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
