package clients

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"chatbot-svc/src/internal/config"
	"chatbot-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(cfg *config.Database) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.LogMode {
		logLevel = logger.Info
	}

	log.WithField("driver", cfg.Driver).Info("Connecting to database...")
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		log.WithError(err).Error("Failed to open database")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseConnection, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseConnection, err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if cfg.Driver == config.DriverSQLite || cfg.Driver == "" {
		applySQLitePragmas(sqlDB)
	}

	log.WithField("driver", cfg.Driver).Info("Connected to database")

	return &Database{DB: db}, nil
}

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA synchronous = NORMAL;",
}

// applySQLitePragmas tunes the file database. A failing pragma leaves the
// connection usable, so it is only logged.
func applySQLitePragmas(sqlDB *sql.DB) {
	for _, pragma := range sqlitePragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			log.WithError(err).WithField("pragma", pragma).Warn("Failed to apply SQLite pragma")
		}
	}
}

func dialectorFor(cfg *config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return sqlite.Open(cfg.Dsn), nil
	case config.DriverMySQL:
		return mysql.New(mysql.Config{
			DSN:                       cfg.Dsn,
			SkipInitializeWithVersion: true,
		}), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.Dsn), nil
	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedDriver, cfg.Driver)
	}
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
		return err
	}
	log.Info("Database connection closed")
	return nil
}
