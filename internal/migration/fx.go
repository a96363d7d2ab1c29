package migration

import (
	"strings"

	"github.com/ascendly/ascendly/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		// The embedded migrations target postgres. Other dialects
		// (sqlite in tests, mysql deployments) manage schema elsewhere.
		if !strings.EqualFold(cfg.DBType, "postgres") {
			log.Named("migration").Info("skipping migrations for non-postgres database",
				zap.String("db_type", cfg.DBType))
			return nil
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
