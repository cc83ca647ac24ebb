package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const DefaultPath = "src/internal/config/cfg.yml"

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
)

type Configuration struct {
	Logs     LogsSettings     `mapstructure:"logs"`
	App      Application      `mapstructure:"app"`
	Database Database         `mapstructure:"database"`
	Queue    QueueConfig      `mapstructure:"queue"`
	Redis    Redis            `mapstructure:"redis"`
	Security SecuritySettings `mapstructure:"security"`
	Server   ServerSettings   `mapstructure:"server"`
	Cache    CacheConfig      `mapstructure:"cache"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	Path             string `mapstructure:"log-path"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

type Application struct {
	Name    string `mapstructure:"name"`
	Timeout int    `mapstructure:"timeout"`
	Version string `mapstructure:"version"`
}

type Database struct {
	Driver            string `mapstructure:"driver"`
	Dsn               string `mapstructure:"dsn"`
	LogMode           bool   `mapstructure:"log-mode"`
	MaxOpenConns      int    `mapstructure:"max-open-conns"`
	MaxIdleConns      int    `mapstructure:"max-idle-conns"`
	ConnMaxLifetime   int    `mapstructure:"conn-max-lifetime"`
	Url               string `mapstructure:"url"`
	DbName            string `mapstructure:"dbname"`
	UserCollection    string `mapstructure:"user-collection"`
	SessionCollection string `mapstructure:"session-collection"`
	Timeout           int    `mapstructure:"timeout"`
}

// IsMongo reports whether the document backend is selected.
func (d Database) IsMongo() bool {
	return d.Driver == DriverMongoDB
}

type QueueConfig struct {
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type RabbitMQConfig struct {
	Url          string `mapstructure:"url"`
	Exchange     string `mapstructure:"exchange"`
	ExchangeType string `mapstructure:"exchange-type"`
	RoutingKey   string `mapstructure:"routing-key"`
	Durable      bool   `mapstructure:"durable"`
	AutoDelete   bool   `mapstructure:"auto-delete"`
	Internal     bool   `mapstructure:"internal"`
	NoWait       bool   `mapstructure:"no-wait"`
}

type Redis struct {
	Url      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Db       int    `mapstructure:"db"`
}

type SecuritySettings struct {
	JwtKey      string `mapstructure:"jwt-key"`
	RequireAuth bool   `mapstructure:"require-auth"`
}

type ServerSettings struct {
	Port            string `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	ReadTimeout     int    `mapstructure:"read-timeout"`
	WriteTimeout    int    `mapstructure:"write-timeout"`
	IdleTimeout     int    `mapstructure:"idle-timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown-timeout"`
}

type CacheConfig struct {
	UserKeyPrefix         string `mapstructure:"user-key-prefix"`
	UserExpirationMinutes int    `mapstructure:"user-expiration-minutes"`
}

// Load reads the yml file at path, falling back to built-in defaults when the
// file does not exist, then applies environment overrides.
func Load(path string) (*Configuration, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("Failed to load .env file")
	}

	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	logrus.WithField("path", path).Info("Configuration loaded")

	overrideFromEnv(cfg)

	return cfg, nil
}

func read(path string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		logrus.WithField("path", path).Warn("Config file not found, using defaults")
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logs.level", "info")
	v.SetDefault("app.name", "chatbot-svc")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.timeout", 10)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "./chatbot.db")
	v.SetDefault("database.max-open-conns", 10)
	v.SetDefault("database.max-idle-conns", 5)
	v.SetDefault("database.conn-max-lifetime", 60)
	v.SetDefault("database.dbname", "chatbot")
	v.SetDefault("database.user-collection", "users")
	v.SetDefault("database.session-collection", "sessions")
	v.SetDefault("database.timeout", 10)
	v.SetDefault("queue.rabbitmq.exchange", "chatbot.activity")
	v.SetDefault("queue.rabbitmq.exchange-type", "topic")
	v.SetDefault("queue.rabbitmq.routing-key", "chatbot.activity")
	v.SetDefault("queue.rabbitmq.durable", true)
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read-timeout", 15)
	v.SetDefault("server.write-timeout", 15)
	v.SetDefault("server.idle-timeout", 60)
	v.SetDefault("server.shutdown-timeout", 10)
	v.SetDefault("cache.user-key-prefix", "user")
	v.SetDefault("cache.user-expiration-minutes", 30)
}

func overrideFromEnv(cfg *Configuration) {
	if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
		cfg.Database.Driver = driver
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.Dsn = dsn
	}

	mongoUri := os.Getenv("MONGODB_URL")
	if mongoUri != "" {
		cfg.Database.Url = mongoUri
	}

	dbName := os.Getenv("DB_NAME")
	if dbName != "" {
		cfg.Database.DbName = dbName
	}

	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl != "" {
		cfg.Redis.Url = redisUrl
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.Db = db
		}
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl != "" {
		cfg.Queue.RabbitMQ.Url = rabbitmqUrl
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey != "" {
		cfg.Security.JwtKey = jwtKey
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
}
