package task

import (
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// JobWrapper 是 cron.JobWrapper 的类型别名。
type JobWrapper = cron.JobWrapper

// wrappedJob 保留被包装任务的名字，外层装饰器仍能取到
type wrappedJob struct {
	inner cron.Job
	run   func()
}

func (w wrappedJob) Run()         { w.run() }
func (w wrappedJob) Name() string { return getJobName(w.inner) }

// NewLoggingWrapper 为每次执行生成 execution_id，记录开始、结束和耗时。
// 任务实现了 ResultJob 时同时记录执行结果。
func NewLoggingWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		return wrappedJob{inner: j, run: func() {
			jobLogger := logger.With(
				slog.String("job_name", getJobName(j)),
				slog.String("execution_id", uuid.New().String()),
			)

			startTime := time.Now()
			jobLogger.Info("Job execution started")

			j.Run()

			attrs := []any{slog.Duration("duration", time.Since(startTime))}
			if rj, ok := j.(ResultJob); ok {
				if err := rj.LastError(); err != nil {
					jobLogger.Warn("Job execution finished with error", append(attrs, slog.Any("error", err))...)
					return
				}
			}
			jobLogger.Info("Job execution finished", attrs...)
		}}
	}
}

// NewPanicRecoveryWrapper 捕获任务 panic 并记录堆栈，不让调度器崩溃。
func NewPanicRecoveryWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		return wrappedJob{inner: j, run: func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Job panicked",
						slog.String("job_name", getJobName(j)),
						slog.Any("panic", r),
						slog.String("stack_trace", string(debug.Stack())),
					)
				}
			}()

			j.Run()
		}}
	}
}

// getJobName 优先使用任务的 Name()，否则取结构体类型名。
func getJobName(j cron.Job) string {
	if namedJob, ok := j.(interface{ Name() string }); ok {
		return namedJob.Name()
	}

	jobType := reflect.TypeOf(j)
	if jobType.Kind() == reflect.Ptr {
		return jobType.Elem().String()
	}
	return jobType.String()
}
