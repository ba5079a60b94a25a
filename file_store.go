package rudder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/clockz"
	"gopkg.in/yaml.v3"
)

// DefaultFileDebounce is the default debounce for external file changes.
// Editors and sync tools often write a file several times in quick
// succession; changes within this window are coalesced.
const DefaultFileDebounce = 100 * time.Millisecond

// FileStore persists values as a YAML map in a single file and can watch
// the file for external edits. Writes go through a temp file and rename
// so watchers never observe a half-written map.
type FileStore struct {
	path     string
	debounce time.Duration
	clock    clockz.Clock

	mu sync.Mutex
}

// fileStoreConfig holds construction options for a FileStore.
type fileStoreConfig struct {
	debounce time.Duration
	clock    clockz.Clock
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*fileStoreConfig)

// WithFileDebounce sets the debounce window for Watch.
func WithFileDebounce(d time.Duration) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.debounce = d
	}
}

// WithFileClock sets a custom clock for debounce timing. Use with
// clockz.FakeClock for deterministic watch testing.
func WithFileClock(clock clockz.Clock) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.clock = clock
	}
}

// NewFileStore creates a FileStore at path. The file is created on first
// Save; a missing file loads as empty.
func NewFileStore(path string, opts ...FileStoreOption) *FileStore {
	cfg := &fileStoreConfig{
		debounce: DefaultFileDebounce,
		clock:    clockz.RealClock,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &FileStore{
		path:     path,
		debounce: cfg.debounce,
		clock:    cfg.clock,
	}
}

// Load returns the value for key from the file, if present.
func (f *FileStore) Load(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Save records value under key, rewriting the file atomically.
func (f *FileStore) Save(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// read parses the backing file. Called with f.mu held.
func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return values, nil
}

// Watch emits the value of key whenever the backing file changes, with
// debouncing. The current value is emitted immediately when present, so a
// follower starts from observed state. The channel closes when ctx is
// canceled or the watcher fails.
func (f *FileStore) Watch(ctx context.Context, key string) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory rather than the file: atomic renames replace
	// the inode, which drops a direct file watch.
	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := make(chan string)

	go func() {
		defer close(out)
		defer watcher.Close()

		if v, ok, rerr := f.Load(key); rerr == nil && ok {
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}

		var (
			timer   clockz.Timer
			pending bool
		)

		for {
			var timerC <-chan time.Time
			if timer != nil {
				timerC = timer.C()
			}

			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if filepath.Clean(event.Name) != filepath.Clean(f.path) {
					continue
				}

				pending = true
				if timer == nil {
					timer = f.clock.NewTimer(f.debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C():
						default:
						}
					}
					timer.Reset(f.debounce)
				}

			case <-timerC:
				if !pending {
					continue
				}
				pending = false
				v, ok, rerr := f.Load(key)
				if rerr != nil || !ok {
					continue
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Keep watching despite transient errors.
			}
		}
	}()

	return out, nil
}
