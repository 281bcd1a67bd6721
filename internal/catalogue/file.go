package catalogue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileSource serves a catalogue kept in a JSON file on disk. The development
// stub backend uses it so the catalogue can be edited while the server runs.
type FileSource struct {
	path     string
	debounce time.Duration
	log      zerolog.Logger

	mu  sync.RWMutex
	cat Catalogue
}

// NewFileSource loads path once and returns the source.
func NewFileSource(path string, log zerolog.Logger) (*FileSource, error) {
	fs := &FileSource{
		path:     path,
		debounce: 150 * time.Millisecond,
		log:      log,
	}
	if err := fs.Reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

// Path returns the watched file path.
func (fs *FileSource) Path() string {
	return fs.path
}

// Fetch returns the most recently loaded catalogue.
func (fs *FileSource) Fetch(context.Context) (Catalogue, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.cat, nil
}

// Reload re-reads the file. On error the previous catalogue is kept.
func (fs *FileSource) Reload() error {
	f, err := os.Open(fs.path)
	if err != nil {
		return fmt.Errorf("opening catalogue %s: %w", fs.path, err)
	}
	defer f.Close()

	cat, err := Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.path, err)
	}

	fs.mu.Lock()
	fs.cat = cat
	fs.mu.Unlock()
	return nil
}

// Watch reloads the catalogue whenever the file changes and sends each
// successfully loaded catalogue on the returned channel. The channel is closed
// when ctx is cancelled.
func (fs *FileSource) Watch(ctx context.Context) (<-chan Catalogue, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := fsw.Add(filepath.Dir(fs.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(fs.path), err)
	}

	out := make(chan Catalogue, 1)
	target := filepath.Clean(fs.path)

	go func() {
		defer close(out)
		defer fsw.Close()

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				pending = true
				timer.Reset(fs.debounce)

			case <-timer.C:
				if !pending {
					continue
				}
				pending = false
				if err := fs.Reload(); err != nil {
					fs.log.Warn().Err(err).Msg("catalogue reload failed; keeping previous version")
					continue
				}
				cat, _ := fs.Fetch(ctx)
				fs.log.Info().Str("file", fs.path).Int("services", len(cat)).Msg("catalogue reloaded")
				select {
				case out <- cat:
				case <-ctx.Done():
					return
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				fs.log.Warn().Err(err).Msg("catalogue watcher error")
			}
		}
	}()

	return out, nil
}
