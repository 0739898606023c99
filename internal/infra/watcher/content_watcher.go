// Package watcher 监听文章目录和索引文件，变化合并后发布 content:changed 事件。
package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/deniskimskku/writing-hub/internal/pkg/debounce"
	"github.com/deniskimskku/writing-hub/internal/pkg/event"
)

// indexKey 索引文件变化在合并批次中的标记，与文章 slug 不会冲突
const indexKey = "/index"

// Publisher 事件发布方
type Publisher interface {
	Publish(topic event.Topic, payload interface{}) bool
}

// ContentWatcher 监听内容变化
type ContentWatcher struct {
	articlesDir string
	indexFile   string
	fsWatcher   *fsnotify.Watcher
	debouncer   *debounce.Debouncer
	publisher   Publisher

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

// NewContentWatcher 创建监听器。indexFile 可以为空。
func NewContentWatcher(articlesDir, indexFile string, window time.Duration, publisher Publisher) (*ContentWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监听器失败: %w", err)
	}

	absDir, err := filepath.Abs(articlesDir)
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("解析文章目录失败: %w", err)
	}
	if err := fsw.Add(absDir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("监听文章目录 %s 失败: %w", absDir, err)
	}

	var absIndex string
	if indexFile != "" {
		absIndex, err = filepath.Abs(indexFile)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("解析索引文件路径失败: %w", err)
		}
		// 编辑器保存时常常是替换文件，所以监听所在目录
		indexDir := filepath.Dir(absIndex)
		if indexDir != absDir {
			if err := fsw.Add(indexDir); err != nil {
				log.Printf("⚠️ 监听索引目录 %s 失败: %v", indexDir, err)
			}
		}
	}

	return &ContentWatcher{
		articlesDir: absDir,
		indexFile:   absIndex,
		fsWatcher:   fsw,
		debouncer:   debounce.NewDebouncer(window),
		publisher:   publisher,
		done:        make(chan struct{}),
	}, nil
}

// Start 在后台处理文件事件，直到 ctx 取消或调用 Stop
func (w *ContentWatcher) Start(ctx context.Context) {
	go w.forward()
	go w.loop(ctx)
	log.Printf("✅ 内容监听已启动: %s", w.articlesDir)
}

func (w *ContentWatcher) loop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if key, ok := w.keyFor(ev); ok {
				w.debouncer.Add(key)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("⚠️ 内容监听出错: %v", err)
		}
	}
}

// forward 把合并后的批次转换为事件
func (w *ContentWatcher) forward() {
	for keys := range w.debouncer.Output() {
		w.publisher.Publish(event.ContentChanged, PayloadFor(keys))
	}
}

// keyFor 把文件事件映射为 slug 或索引标记，无关文件返回 false
func (w *ContentWatcher) keyFor(ev fsnotify.Event) (string, bool) {
	if ev.Op == fsnotify.Chmod {
		return "", false
	}
	path := filepath.Clean(ev.Name)
	if w.indexFile != "" && path == w.indexFile {
		return indexKey, true
	}
	if filepath.Dir(path) != w.articlesDir {
		return "", false
	}
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".md") || strings.HasPrefix(name, ".") {
		return "", false
	}
	return strings.TrimSuffix(name, ".md"), true
}

// PayloadFor 将一批 key 转换为事件负载；包含索引变化时视为整体刷新
func PayloadFor(keys []string) event.ContentChangedPayload {
	slugs := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == indexKey {
			return event.ContentChangedPayload{Source: "watcher"}
		}
		slugs = append(slugs, key)
	}
	return event.ContentChangedPayload{Slugs: slugs, Source: "watcher"}
}

// Stop 停止监听，可重复调用
func (w *ContentWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	w.debouncer.Stop()
	return w.fsWatcher.Close()
}

// Done 在事件循环退出后关闭
func (w *ContentWatcher) Done() <-chan struct{} {
	return w.done
}
