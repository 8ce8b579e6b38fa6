// Package bootstrap builds the pieces shared by the HTTP server and the sweep command.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-VisitScheduler/internal/config"
	"github.com/m04kA/SMC-VisitScheduler/internal/infra/notifier"
	notificationRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/notification"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
)

const pingTimeout = 5 * time.Second

// Logger printf-style logger
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// OpenDatabase opens the PostgreSQL pool and checks the connection
func OpenDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: ping database: %w", err)
	}
	return db, nil
}

// NewNotifier combines the configured notification targets.
// The returned close func drains the NATS connection, if any.
func NewNotifier(cfg config.NotificationsConfig, name string, db *dbmetrics.DB, log Logger) (notifier.Notifier, func(), error) {
	var targets []notifier.Notifier
	closeFn := func() {}

	if cfg.Store {
		targets = append(targets, notifier.NewStore(notificationRepo.NewRepository(db)))
	}

	if cfg.NATS.Enabled {
		conn, err := notifier.Connect(cfg.NATS.URL, name)
		if err != nil {
			return nil, closeFn, err
		}
		targets = append(targets, notifier.NewNATS(conn, cfg.NATS.SubjectPrefix))
		closeFn = func() {
			if err := conn.Drain(); err != nil {
				log.Warn("NATS drain: %v", err)
			}
		}
		log.Info("NATS notifications enabled (url=%s, prefix=%s)", cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	}

	if len(targets) == 0 {
		log.Warn("Notifications disabled: no targets configured")
		return notifier.Noop{}, closeFn, nil
	}
	return notifier.NewFanout(log, targets...), closeFn, nil
}
