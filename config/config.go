package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Auth         Auth
	Redis        Redis
	Log          Log
	Retest       Retest
	ResultTables []string
}

type Server struct {
	Port string
}

type Database struct {
	Driver     string // postgres | sqlite
	Host       string
	Port       string
	User       string
	Password   string `json:"-"`
	Name       string
	SQLitePath string
	TxTimeout  time.Duration
}

type Auth struct {
	JWTSecret string `json:"-"`
}

type Redis struct {
	Addr string
	TTL  time.Duration
}

type Log struct {
	Level  string
	Pretty bool
}

type Retest struct {
	SubmitMaxRetries int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SQLITE_PATH", "schooltest.db")
	viper.SetDefault("DATABASE_TX_TIMEOUT", "5s")
	viper.SetDefault("SUBMIT_MAX_RETRIES", 3)
	viper.SetDefault("REDIS_TTL", "10m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RESULT_TABLES", "quiz_results,drawing_results,speech_results,matching_results")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Driver = strings.ToLower(viper.GetString("DATABASE_DRIVER"))
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SQLitePath = viper.GetString("DATABASE_SQLITE_PATH")
	config.Database.TxTimeout = viper.GetDuration("DATABASE_TX_TIMEOUT")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.TTL = viper.GetDuration("REDIS_TTL")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	config.Retest.SubmitMaxRetries = viper.GetInt("SUBMIT_MAX_RETRIES")
	config.ResultTables = splitCSV(viper.GetString("RESULT_TABLES"))

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
