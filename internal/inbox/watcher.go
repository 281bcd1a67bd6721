package inbox

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reports changes to an inbox directory.
type Watcher struct {
	inbox    *Inbox
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      zerolog.Logger
}

// NewWatcher watches the inbox root and its archive.
func NewWatcher(in *Inbox, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	for _, dir := range []string{in.dir, filepath.Join(in.dir, archivedDir)} {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch directory %s: %w", dir, err)
		}
	}
	return &Watcher{
		inbox:    in,
		watcher:  fsw,
		debounce: 100 * time.Millisecond,
		log:      log,
	}, nil
}

// Watch returns a channel of events. Events arriving within the debounce
// window are coalesced to one event per submission id. The channel is
// closed when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) <-chan Event {
	out := make(chan Event, 64)

	go func() {
		defer close(out)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		archived := map[string]bool{}
		touched := map[string]bool{}

		flush := func() bool {
			ids := make([]string, 0, len(touched))
			for id := range touched {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				ev := Event{ID: id, Time: time.Now()}
				switch s, err := w.inbox.Get(id); {
				case archived[id]:
					ev.Type = EventArchived
					if err == nil {
						ev.Submission = s
					}
				case err == nil && s.Status == StatusNew:
					ev.Type = EventAdded
					ev.Submission = s
				default:
					ev.Type = EventRemoved
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return false
				}
			}
			archived = map[string]bool{}
			touched = map[string]bool{}
			return true
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				base := filepath.Base(ev.Name)
				if strings.HasPrefix(base, ".tmp-") || !strings.HasSuffix(base, ".json") {
					continue
				}
				id := strings.TrimSuffix(base, ".json")
				touched[id] = true
				if filepath.Base(filepath.Dir(ev.Name)) == archivedDir && ev.Has(fsnotify.Create) {
					archived[id] = true
				}
				timer.Reset(w.debounce)

			case <-timer.C:
				if len(touched) > 0 && !flush() {
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn().Err(err).Msg("inbox watcher error")
			}
		}
	}()

	return out
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
