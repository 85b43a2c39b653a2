package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// newRootCmd 命令行入口
//
//	bookshop [serve]          启动HTTP服务（默认）
//	bookshop migrate          初始化表结构后退出
//	bookshop events           订阅并打印领域事件
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "bookshop",
		Short:         "书店后端服务",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认 ./config/config.yaml）")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP服务",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.RunE = serve.RunE

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "初始化表结构后退出",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMigrate(configPath)
		},
	}

	var (
		queue string
		keys  []string
	)
	events := &cobra.Command{
		Use:   "events",
		Short: "订阅并打印领域事件",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvents(cmd.Context(), configPath, queue, keys)
		},
	}
	events.Flags().StringVar(&queue, "queue", "", "队列名，为空时使用临时队列")
	events.Flags().StringSliceVar(&keys, "keys", []string{"#"}, "绑定的routing key，如 order.*")

	root.AddCommand(serve, migrate, events)
	return root
}

// setup 加载配置并创建全局logger
func setup(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("加载配置失败: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("初始化日志失败: %w", err)
	}
	// context里没有logger时（后台任务、测试）zerolog.Ctx回退到这个
	zerolog.DefaultContextLogger = &log

	return cfg, log, nil
}

func runServe(ctx context.Context, configPath string) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("db_driver", cfg.Database.Driver).
		Bool("redis", cfg.Redis.Enabled).
		Bool("mq", cfg.MQ.Enabled).
		Bool("tracing", cfg.Tracing.Enabled).
		Msg("配置加载成功")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 指标与追踪
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn().Err(err).Msg("关闭链路追踪失败")
			}
		}()
	}

	// 2. 依赖注入（手动组装，与wire.go中的Provider顺序一致）
	engine, cleanup, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// 3. 启动服务
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 4. 等待退出信号，优雅关闭
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP服务异常退出: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.Server.ShutdownTimeout).Msg("收到退出信号，开始关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭HTTP服务失败: %w", err)
	}
	log.Info().Msg("服务已停止")
	return nil
}

func runMigrate(configPath string) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}

	db, err := gormdb.NewDB(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("表结构已就绪")
	return nil
}

func runEvents(ctx context.Context, configPath, queue string, keys []string) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTypeTopic, queue, keys, log)
	if err != nil {
		return err
	}
	defer consumer.Close()

	return consumer.Consume(ctx, func(d mq.Delivery) error {
		log.Info().
			Str("routing_key", d.RoutingKey).
			Time("published_at", d.Timestamp).
			RawJSON("payload", d.Body).
			Msg("领域事件")
		return nil
	})
}
