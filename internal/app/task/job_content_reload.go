package task

import (
	"errors"
	"sync"

	"github.com/deniskimskku/writing-hub/internal/pkg/event"
)

// errEventDropped 事件总线已满或已关闭
var errEventDropped = errors.New("content:changed 事件未能入队")

// ContentReloadJob 定期发布整体刷新事件，兜底文件监听漏掉的变化。
type ContentReloadJob struct {
	publisher Publisher

	mu      sync.Mutex
	lastErr error
}

// NewContentReloadJob 创建内容重载任务
func NewContentReloadJob(publisher Publisher) *ContentReloadJob {
	return &ContentReloadJob{publisher: publisher}
}

// Name 任务名
func (j *ContentReloadJob) Name() string {
	return "ContentReloadJob"
}

// Run 执行任务
func (j *ContentReloadJob) Run() {
	var err error
	if !j.publisher.Publish(event.ContentChanged, event.ContentChangedPayload{Source: "cron"}) {
		err = errEventDropped
	}
	j.mu.Lock()
	j.lastErr = err
	j.mu.Unlock()
}

// LastError 最近一次执行的错误
func (j *ContentReloadJob) LastError() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastErr
}
