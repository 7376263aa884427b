// Package app 按配置装配进程内的各个组件：数据库、Redis、组织树服务、认证服务和指标。
// HTTP 服务和命令行都从这里拿依赖。
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orgchart/internal/config"
	"orgchart/internal/metrics"
	"orgchart/internal/orgchart"
	"orgchart/internal/repository"
	"orgchart/internal/seed"
	"orgchart/internal/service"
	"orgchart/pkg/database"
	"orgchart/pkg/log"
	"orgchart/pkg/token"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config

	DB    *gorm.DB
	Redis *redis.Client

	OrgService  service.OrgService
	AuthService service.AuthService

	Registry *prometheus.Registry
	Metrics  *metrics.Collector
}

// New 装配所有组件。数据库为空表时用种子文件初始化；未配置数据库时直接从种子文件构建内存树。
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	a.DB = db

	var repo repository.OrgNodeRepository
	if db != nil {
		if err := database.RunMigrate(db); err != nil {
			a.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		repo = repository.NewOrgNodeRepository(db)
	}

	a.OrgService, err = newOrgService(cfg.Org, repo)
	if err != nil {
		a.Close()
		return nil, err
	}

	rdb, err := database.NewRedis(ctx, cfg.Database.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Redis = rdb
	a.AuthService = newAuthService(cfg, rdb)

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewOrgCollector(a.OrgService.Root),
	)
	a.Metrics = metrics.NewCollector(a.Registry)
	return a, nil
}

func newOrgService(cfg config.OrgConfig, repo repository.OrgNodeRepository) (service.OrgService, error) {
	if repo == nil {
		root, err := seedOrEmpty(cfg)
		if err != nil {
			return nil, err
		}
		log.Infow("Org tree kept in memory only", "root", root.Name(), "headcount", root.EmployeeCount())
		return service.NewOrgService(nil, root), nil
	}

	count, err := repo.Count()
	if err != nil {
		return nil, fmt.Errorf("count org nodes: %w", err)
	}
	if count == 0 {
		root, err := seedOrEmpty(cfg)
		if err != nil {
			return nil, err
		}
		svc := service.NewOrgService(repo, root)
		if err := svc.Replace(root); err != nil {
			return nil, err
		}
		log.Infow("Org tree seeded", "seed_file", cfg.SeedFile, "headcount", root.EmployeeCount())
		return svc, nil
	}

	svc := service.NewOrgService(repo, orgchart.NewDepartment(cfg.Name))
	if err := svc.Load(); err != nil {
		return nil, err
	}
	return svc, nil
}

func seedOrEmpty(cfg config.OrgConfig) (*orgchart.Department, error) {
	if cfg.SeedFile == "" {
		return orgchart.NewDepartment(cfg.Name), nil
	}
	root, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed %s: %w", cfg.SeedFile, err)
	}
	return root, nil
}

func newAuthService(cfg *config.Config, rdb *redis.Client) service.AuthService {
	passwordHash := cfg.Auth.AdminPasswordHash
	if cfg.JWT.Secret == "" && passwordHash != "" {
		log.Warnf("jwt.secret is empty, admin login disabled")
		passwordHash = ""
	}
	if passwordHash == "" {
		log.Warnf("auth.admin_password_hash is empty, write endpoints are unavailable")
	}

	jwtManager := token.NewJWTManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpireHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshTokenExpireDays)*24*time.Hour,
	)

	var blacklist repository.TokenBlacklist
	if rdb != nil {
		blacklist = repository.NewRedisTokenBlacklist(rdb)
	}
	return service.NewAuthService(cfg.Auth.AdminUsername, passwordHash, jwtManager, blacklist)
}

// HealthCheck 检查数据库和 Redis 是否可用；未配置的组件视为健康。
func (a *App) HealthCheck(ctx context.Context) error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close 释放数据库和 Redis 连接。
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
