// 指示: miu200521358
// Package watcher は入力モーションファイルの更新を監視する。
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/miu200521358/mu_vmd2vam/pkg/shared/logging"
)

const (
	// DefaultDebounce は連続した書き込みイベントをまとめる待ち時間。
	DefaultDebounce = 300 * time.Millisecond
)

// MotionWatcher は1つのモーションファイルの更新を監視する。
// エディタの置き換え保存にも追従するため、親ディレクトリを監視してファイル名で絞り込む。
type MotionWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewMotionWatcher はMotionWatcherを生成する。
func NewMotionWatcher(path string, debounce time.Duration) (*MotionWatcher, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("監視対象パスの解決に失敗しました: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ファイル監視の開始に失敗しました: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &MotionWatcher{path: absolute, debounce: debounce, watcher: watcher}, nil
}

// Run はコンテキストが終了するまで監視し、更新のたびに onChange を呼ぶ。
// onChange のエラーはログに残して監視を続ける。
func (w *MotionWatcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("監視ディレクトリの登録に失敗しました: %w", err)
	}
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return fmt.Errorf("ファイル監視でエラーが発生しました: %w", err)
			}
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			logWatchInfo("モーション更新検知: %s", filepath.Base(w.path))
			if err := onChange(ctx); err != nil {
				logWatchWarn("再変換に失敗しました: %v", err)
			}
		}
	}
}

// Close は監視を終了する。
func (w *MotionWatcher) Close() error {
	return w.watcher.Close()
}

// logWatchInfo は監視の情報ログを出力する。
func logWatchInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logWatchWarn は監視の警告ログを出力する。
func logWatchWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}
