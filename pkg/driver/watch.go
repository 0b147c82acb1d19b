package driver

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch re-tokenizes path every time it changes and hands each Result to
// onChange, starting with one pass over the current contents. It blocks
// until ctx is canceled or the watch fails; cancellation returns ctx.Err().
//
// The parent directory is watched rather than the file itself: editors that
// save by rename-and-replace would otherwise drop the watch after one save.
// Watching only works against the host filesystem.
func (t *Tokenati) Watch(ctx context.Context, path string, onChange func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	deliver := func() {
		res, err := t.TokenizeFile(path)
		if err != nil {
			t.logger.Debug("watched file unreadable", "file", path, "err", err)
			return
		}
		onChange(res)
	}
	deliver()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			t.logger.Debug("source changed", "file", path, "op", ev.Op.String())
			deliver()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			t.logger.Warn("watch error", "err", err)
		}
	}
}
