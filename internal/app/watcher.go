package app

import (
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchLayout notifies the operator when the layout file changes on
// disk. The running configuration is immutable, so the only action is a
// log line pointing at a restart.
func watchLayout(path string, log zerolog.Logger) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		_ = w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
					log.Warn().Str("layout", path).Msg("layout changed on disk, restart to apply")
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Debug().Err(err).Msg("layout watch error")
			}
		}
	}()
	return w, nil
}
