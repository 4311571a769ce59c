package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchCallback 配置文件变更回调，err 表示重载或监视是否出错。
// 重载失败时 cfg 仍保留旧内容。
type WatchCallback func(cfg Config, err error)

// Watch 监视配置文件，变更时自动 Reload 并回调，直到 ctx 取消。
//
// 监视的是文件所在目录而不是文件本身：编辑器和 ConfigMap 更新常以
// 写临时文件再 rename 的方式替换文件，直接监视文件会丢失事件。
//
// Watch 阻塞运行，返回时已释放 fsnotify 资源且不会再有回调。
// ctx 取消时返回 nil。
func Watch(ctx context.Context, cfg Config, callback WatchCallback, opts ...WatchOption) error {
	kc, ok := cfg.(*koanfConfig)
	if !ok {
		return fmt.Errorf("xconf: unsupported config type %T", cfg)
	}
	if kc.isBytes {
		return ErrNotReloadable
	}

	o := &watchOptions{debounce: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(o)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("xconf: failed to create watcher: %w", err)
	}
	dir := filepath.Dir(kc.path)
	if err := w.Add(dir); err != nil {
		return errors.Join(fmt.Errorf("xconf: failed to watch directory %s: %w", dir, err), w.Close())
	}
	defer func() { _ = w.Close() }()

	filename := filepath.Base(kc.path)
	notify := func(err error) {
		if callback != nil {
			callback(kc, err)
		}
	}

	// 防抖定时器只在本 goroutine 中读写，回调也在本 goroutine 中执行
	timer := time.NewTimer(o.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(o.debounce)

		case <-timer.C:
			notify(kc.Reload())

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			notify(fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}
