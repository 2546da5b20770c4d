package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"veridian-hq/minerva/pkg/schema"
)

// FileSource loads schema documents from a YAML file or a directory of
// YAML files. Directory loads walk lexically, so parent types can live in
// earlier-sorted files than the types extending them.
type FileSource struct {
	path     string
	loader   *schema.Loader
	logger   *slog.Logger
	debounce time.Duration
}

// NewFileSource creates a file-based schema source. A nil loader falls
// back to a loader over the builtin rule catalog.
func NewFileSource(path string, loader *schema.Loader, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	if loader == nil {
		loader = schema.NewLoader(nil, logger)
	}
	return &FileSource{
		path:     path,
		loader:   loader,
		logger:   logger,
		debounce: 100 * time.Millisecond,
	}
}

// Load reads all schema documents from the configured path.
func (s *FileSource) Load(ctx context.Context) (*schema.Set, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	set := schema.NewSet()

	if info.IsDir() {
		err = filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if info.IsDir() || !isSchemaFile(path) {
				return nil
			}
			return s.loader.LoadFileInto(set, path)
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.loader.LoadFileInto(set, s.path); err != nil {
			return nil, err
		}
	}

	s.logger.Info("loaded schemas from source",
		"path", s.path,
		"type_count", set.Len(),
		"rule_count", set.RuleCount(),
	)

	return set, nil
}

// Watch watches the configured path with fsnotify and emits a debounced
// event per burst of file changes. The channel closes when the context is
// cancelled.
func (s *FileSource) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := addWatchPath(watcher, s.path); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan Event)
	debounce := newDebouncer(s.debounce)

	go func() {
		defer close(events)
		defer watcher.Close()
		defer debounce.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !shouldProcess(ev) {
					continue
				}

				s.logger.Debug("schema file event",
					"path", ev.Name,
					"op", ev.Op.String(),
				)

				out := Event{Path: ev.Name, Op: opString(ev.Op)}
				debounce.Trigger(func() {
					select {
					case events <- out:
					case <-ctx.Done():
					}
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Error("schema watcher error", "error", err)
				select {
				case events <- Event{Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	s.logger.Info("schema watcher started", "path", s.path)

	return events, nil
}

// addWatchPath registers a file, or a directory tree, with the watcher.
func addWatchPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path %q: %w", path, err)
	}

	if !info.IsDir() {
		return watcher.Add(path)
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(p), ".") && p != path {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", p, err)
		}
		return nil
	})
}

// shouldProcess filters watcher noise: chmods, hidden files, and files
// that are not schema documents.
func shouldProcess(ev fsnotify.Event) bool {
	if ev.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	return isSchemaFile(ev.Name)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func opString(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return "created"
	case op&fsnotify.Remove == fsnotify.Remove:
		return "removed"
	case op&fsnotify.Rename == fsnotify.Rename:
		return "removed"
	default:
		return "modified"
	}
}
