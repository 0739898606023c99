package task

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/deniskimskku/writing-hub/internal/pkg/event"
)

// Scheduler 封装了 cron 实例和其依赖。
// 负责任务的注册、启动和停止。
type Scheduler struct {
	cron       *cron.Cron
	logger     *slog.Logger
	publisher  Publisher
	reloadSpec string
}

// Publisher 任务向事件总线发布事件
type Publisher interface {
	Publish(topic event.Topic, payload interface{}) bool
}

// NewScheduler 是 Scheduler 的构造函数。reloadSpec 为空时不注册内容重载任务。
func NewScheduler(publisher Publisher, reloadSpec string) *Scheduler {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
		),
	)

	return &Scheduler{
		cron:       c,
		logger:     logger,
		publisher:  publisher,
		reloadSpec: reloadSpec,
	}
}

// RegisterJobs 在调度器中注册所有定时任务。
func (s *Scheduler) RegisterJobs() error {
	s.logger.Info("Registering all periodic jobs...")

	if s.reloadSpec == "" {
		s.logger.Info("-> 'ContentReloadJob' disabled", "reason", "empty schedule")
		return nil
	}

	_, err := s.cron.AddJob(s.reloadSpec, NewContentReloadJob(s.publisher))
	if err != nil {
		s.logger.Error("Failed to add 'ContentReloadJob'", slog.Any("error", err))
		return fmt.Errorf("注册内容重载任务失败 (%s): %w", s.reloadSpec, err)
	}
	s.logger.Info("-> Successfully registered 'ContentReloadJob'", "schedule", s.reloadSpec)

	s.logger.Info("All periodic jobs registered.")
	return nil
}

// Entries 已注册任务数量
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start 启动 cron 调度器。
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.")
	s.cron.Start()
}

// Stop 优雅地停止 cron 调度器，等待正在运行的任务结束。
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}
