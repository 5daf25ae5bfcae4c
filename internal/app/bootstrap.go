package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campus-rent/internal/config"
	"github.com/campus-rent/internal/logger"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/provider"
	"github.com/campus-rent/internal/router"
	"github.com/campus-rent/internal/worker"
)

// PrepareDatabase 连接数据库、迁移表结构并写入初始学校与管理员
func PrepareDatabase(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	debug := strings.EqualFold(cfg.Server.Mode, "debug")
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, debug); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	college, err := models.EnsureCollege(cfg.Bootstrap.CollegeName, cfg.Bootstrap.CollegeDomain)
	if err != nil {
		return fmt.Errorf("ensure bootstrap college: %w", err)
	}
	if college == nil {
		logger.Infow("bootstrap_college_skipped", "reason", "college_domain_empty")
		return nil
	}
	if cfg.Server.Mode == "release" && cfg.Bootstrap.AdminPassword == "" {
		logger.Warnw("bootstrap_admin_skipped", "reason", "admin_password_empty_in_release")
		return nil
	}
	if err := models.InitDefaultAdmin(cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, college.ID); err != nil {
		logger.Warnw("bootstrap_admin_failed", "error", err)
	}
	return nil
}

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	// 初始化 Worker 服务；all 模式下队列未启用时跳过
	if mode == ModeAll || mode == ModeWorker {
		if !cfg.Queue.Enabled && mode == ModeAll {
			logger.Infow("worker_skipped", "reason", "queue_disabled")
		} else {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no services initialized for mode %q", mode)
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
