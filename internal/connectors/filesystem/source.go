// Package filesystem provides the watched document directory source.
// It is the only component that touches the filesystem; ingestion and
// request handling consume its event stream and snapshots.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DirectorySource = (*Source)(nil)

// Source watches a single flat directory of document files.
type Source struct {
	rootPath string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// New creates a directory source for rootPath.
func New(rootPath string) *Source {
	return &Source{rootPath: rootPath}
}

// RootPath returns the watched directory.
func (s *Source) RootPath() string {
	return s.rootPath
}

// Validate checks the root path exists and is a readable directory.
func (s *Source) Validate() error {
	info, err := os.Stat(s.rootPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.rootPath)
	}
	return nil
}

// List enumerates the directory once and returns the paths of all regular
// files. Subdirectories are not descended: the document directory is flat.
func (s *Source) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.rootPath, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(s.rootPath, entry.Name()))
	}
	return paths, nil
}

// Watch subscribes to change notifications for the directory. Events are
// streamed until ctx is cancelled or the underlying watcher errors; an
// error on the error channel means the subscription is broken and the
// caller must call Watch again.
func (s *Source) Watch(ctx context.Context) (<-chan driven.FileEvent, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.rootPath); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", s.rootPath, err)
	}

	s.mu.Lock()
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.watcher = watcher
	s.mu.Unlock()

	events := make(chan driven.FileEvent)
	errs := make(chan error, 1)

	go func() {
		defer close(events)
		defer close(errs)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					errs <- fmt.Errorf("watch channel closed")
					return
				}
				fe, relevant := translate(ev)
				if !relevant {
					continue
				}
				select {
				case events <- fe:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					errs <- fmt.Errorf("watch error channel closed")
					return
				}
				logger.Warn("filesystem watch error: %v", err)
				errs <- err
				return
			}
		}
	}()

	return events, errs, nil
}

// translate maps an fsnotify event to a FileEvent. Create and Rename both
// signal a possible new file; Remove and Rename can both mean the named
// path is gone, which the consumer decides by checking Exists. Write and
// Chmod are ignored here: a rewrite shows up as remove+create from the
// upload flow this engine serves.
func translate(ev fsnotify.Event) (driven.FileEvent, bool) {
	fe := driven.FileEvent{Path: ev.Name, Name: filepath.Base(ev.Name)}

	switch {
	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename):
		fe.Type = driven.FileCreated
		return fe, true
	case ev.Op.Has(fsnotify.Remove):
		fe.Type = driven.FileRemoved
		return fe, true
	default:
		return fe, false
	}
}

// Read returns the current contents of a file.
func (s *Source) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Exists reports whether the file currently exists as a regular file.
func (s *Source) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Close releases watch resources.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}
