// Package debounce 合并短时间内的重复事件。
package debounce

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

// DefaultWindow 默认合并窗口
const DefaultWindow = 200 * time.Millisecond

// Debouncer 收集窗口期内出现的 key，最后一次 Add 之后静默 window 才整体输出一批。
// 同一个 key 在一批中只出现一次。
type Debouncer struct {
	window  time.Duration
	pending map[string]struct{}
	mu      sync.Mutex
	output  chan []string
	timer   *time.Timer
	stopped bool
}

// NewDebouncer 创建 Debouncer，window <= 0 时使用 DefaultWindow
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{
		window:  window,
		pending: make(map[string]struct{}),
		output:  make(chan []string, 10),
	}
}

// Add 记录一个 key 并重新计时
func (d *Debouncer) Add(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[key] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

// flush 输出当前所有待处理 key
func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || len(d.pending) == 0 {
		return
	}

	keys := make([]string, 0, len(d.pending))
	for key := range d.pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	d.pending = make(map[string]struct{})

	select {
	case d.output <- keys:
	default:
		slog.Warn("debouncer output full, dropping batch", slog.Int("batch_size", len(keys)))
	}
}

// Output 返回合并后的批次
func (d *Debouncer) Output() <-chan []string {
	return d.output
}

// Stop 停止计时并关闭输出通道，可重复调用
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.output)
}
