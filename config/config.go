package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config is the service configuration. Every key can be set from the environment using its
// upper-case name (MONGO_URI, JWT_SECRET, ...) or from the optional config file.
type Config struct {
	Port             string `mapstructure:"port"`
	Env              string `mapstructure:"env"`
	MongoURI         string `mapstructure:"mongo_uri"`
	DBName           string `mapstructure:"db_name"`
	RedisAddr        string `mapstructure:"redis_addr"`
	RedisPassword    string `mapstructure:"redis_password"`
	RedisDB          int    `mapstructure:"redis_db"`
	JWTSecret        string `mapstructure:"jwt_secret"`
	ClientURL        string `mapstructure:"client_url"`
	KafkaBroker      string `mapstructure:"kafka_broker"`
	KafkaTopic       string `mapstructure:"kafka_topic"`
	LogLevel         string `mapstructure:"log_level"`
	LogFormat        string `mapstructure:"log_format"`
	ReferralLinkBase string `mapstructure:"referral_link_base"`
	TreeMaxLevel     int    `mapstructure:"tree_max_level"`
}

// IsDevelopment reports whether the service runs with ENV=development or ENV=dev.
func (c Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

func setDefaultVariables(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("mongo_uri", "")
	v.SetDefault("db_name", "mlm")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("client_url", "")
	v.SetDefault("kafka_broker", "")
	v.SetDefault("kafka_topic", "member-events")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("referral_link_base", "http://localhost:3000/register")
	v.SetDefault("tree_max_level", 7)
}

// OpenConfig loads .env into the process environment and prepares v to read the
// environment and, when present, a config file.
func OpenConfig(v *viper.Viper, file string) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName(".config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/sower_backend/")
	}
	v.AutomaticEnv()
	setDefaultVariables(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("Unable to read configuration file")
		}
	}
}

// Load decodes v into a Config.
func Load(v *viper.Viper) Config {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Unable to decode config into struct")
	}
	return cfg
}
