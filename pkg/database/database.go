// Package database 负责按配置打开 GORM 连接（MySQL / SQLite）与 Redis 客户端。
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"orgchart/internal/config"
	"orgchart/internal/model"
	"orgchart/pkg/log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Open 根据 database.driver 建立连接。driver 为空时返回 (nil, nil)，调用方只在内存中维护组织树。
// SQL 日志通过 zapgorm2 输出到全局 zap logger。
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "":
		return nil, nil
	case DriverMySQL:
		if cfg.MySQL.DSN == "" {
			return nil, fmt.Errorf("database.mysql.dsn is required")
		}
		dialector = mysql.Open(cfg.MySQL.DSN)
	case DriverSQLite:
		path := cfg.SQLite.Path
		if path == "" {
			path = ":memory:"
		}
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormLogger := zapgorm2.New(log.GetLogger())
	gormLogger.LogLevel = logger.Warn
	gormLogger.SlowThreshold = 200 * time.Millisecond
	gormLogger.IgnoreRecordNotFoundError = true

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// SQLite 只允许单写者，同时 :memory: 库按连接隔离。
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)           // 最大空闲连接数
		sqlDB.SetMaxOpenConns(100)          // 最大打开连接数
		sqlDB.SetConnMaxLifetime(time.Hour) // 连接最大存活时间，超时连接会被回收
	}

	log.Infow("Database connected", "driver", cfg.Driver)
	return db, nil
}

// RunMigrate 创建或升级 org_nodes 表。
func RunMigrate(db *gorm.DB) error {
	log.Info("Running migrations...")

	if err := db.AutoMigrate(&model.OrgNode{}); err != nil {
		log.Errorf("Failed to run migrations: %v", err)
		return err
	}

	log.Info("Migrations completed successfully")
	return nil
}
