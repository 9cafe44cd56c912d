package command

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

// bootstrap загружает конфиг, поднимает логгер и подключение к базе.
// Закрывать ресурсы должен вызывающий
func bootstrap(ctx context.Context) (*config.Config, *logger.Logger, *sql.DB, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		log.Close()
		return nil, nil, nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	return cfg, log, db, nil
}

func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
