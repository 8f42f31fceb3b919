package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// Ingestion timing defaults.
const (
	// DefaultSettleDelay is the pause after a create event before reading
	// the file, to avoid a partially-written upload.
	DefaultSettleDelay = time.Second

	// DefaultBackoffInitial and DefaultBackoffMax bound the watch
	// resubscribe backoff. The retry loop is never busy.
	DefaultBackoffInitial = 2 * time.Second
	DefaultBackoffMax     = 30 * time.Second
)

// IngestService keeps the document store in sync with the watched
// directory: one bootstrap scan, then a continuous watch loop with
// restart-on-error. It is the store's only writer.
type IngestService struct {
	source   driven.DirectorySource
	registry driven.ExtractorRegistry
	store    driven.DocumentStore

	settleDelay    time.Duration
	backoffInitial time.Duration
	backoffMax     time.Duration

	state atomic.Int32

	// wg tracks in-flight per-event goroutines for clean shutdown.
	wg sync.WaitGroup
}

// NewIngestService creates the ingestion service.
func NewIngestService(
	source driven.DirectorySource,
	registry driven.ExtractorRegistry,
	store driven.DocumentStore,
) *IngestService {
	return &IngestService{
		source:         source,
		registry:       registry,
		store:          store,
		settleDelay:    DefaultSettleDelay,
		backoffInitial: DefaultBackoffInitial,
		backoffMax:     DefaultBackoffMax,
	}
}

// SetSettleDelay overrides the post-create settle delay. Useful in tests.
func (s *IngestService) SetSettleDelay(d time.Duration) {
	if d >= 0 {
		s.settleDelay = d
	}
}

// SetBackoff overrides the watch restart backoff bounds.
func (s *IngestService) SetBackoff(initial, maxBackoff time.Duration) {
	if initial > 0 {
		s.backoffInitial = initial
	}
	if maxBackoff >= initial {
		s.backoffMax = maxBackoff
	}
}

// State returns the current lifecycle state.
func (s *IngestService) State() driving.IngestState {
	return driving.IngestState(s.state.Load())
}

func (s *IngestService) setState(st driving.IngestState) {
	s.state.Store(int32(st))
	logger.Debug("ingestion state: %s", st)
}

// Bootstrap enumerates the directory once and ingests every supported
// file. A directory read failure is logged and leaves the store empty;
// the process continues and the watcher may still recover later.
func (s *IngestService) Bootstrap(ctx context.Context) {
	s.setState(driving.IngestBootstrapping)

	paths, err := s.source.List(ctx)
	if err != nil {
		logger.Warn("bootstrap scan failed, starting with an empty store: %v", err)
		return
	}

	ingested := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		if s.ingestFile(ctx, path) {
			ingested++
		}
	}
	logger.Info("bootstrap complete: %d of %d files ingested", ingested, len(paths))
}

// Run consumes watch events until ctx is cancelled. A broken watch
// subscription triggers a resubscribe after exponential backoff; repeated
// failures are logged on every retry, never silently swallowed.
func (s *IngestService) Run(ctx context.Context) {
	defer s.setState(driving.IngestStopped)
	defer s.wg.Wait()

	backoff := s.backoffInitial
	for {
		if ctx.Err() != nil {
			return
		}

		events, errs, err := s.source.Watch(ctx)
		if err != nil {
			logger.Warn("watch subscription failed, retrying in %s: %v", backoff, err)
			s.setState(driving.IngestRestarting)
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, s.backoffMax)
			continue
		}

		// Healthy subscription, reset the backoff.
		backoff = s.backoffInitial
		s.setState(driving.IngestWatching)

		if !s.consume(ctx, events, errs) {
			return
		}
		s.setState(driving.IngestRestarting)
		logger.Warn("watch stream ended, resubscribing in %s", backoff)
		if !sleepCtx(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff, s.backoffMax)
	}
}

// consume drains one watch subscription. Returns false when ctx is done,
// true when the subscription broke and the caller should resubscribe.
func (s *IngestService) consume(ctx context.Context, events <-chan driven.FileEvent, errs <-chan error) bool {
	for {
		select {
		case <-ctx.Done():
			return false

		case err, ok := <-errs:
			if ok && err != nil {
				logger.Warn("watch stream error: %v", err)
			}
			return true

		case ev, ok := <-events:
			if !ok {
				return ctx.Err() == nil
			}
			s.dispatchEvent(ctx, ev)
		}
	}
}

// dispatchEvent handles a single filesystem event. Events for different
// files are processed independently and may interleave; each event's own
// settle-then-process sequence completes before its upsert or removal.
func (s *IngestService) dispatchEvent(ctx context.Context, ev driven.FileEvent) {
	if !domain.Supported(ev.Name) {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		// Settle so a partially-written upload is not read mid-copy.
		if !sleepCtx(ctx, s.settleDelay) {
			return
		}

		// Disk state after settling decides: the event type only hints.
		// A create followed by a quick delete must end as a removal.
		if s.source.Exists(ev.Path) {
			s.ingestFile(ctx, ev.Path)
			return
		}
		if s.store.RemoveByFileName(ev.Name) {
			logger.Info("removed %s", ev.Name)
		}
	}()
}

// ingestFile extracts one file and upserts its record. Returns false for
// skipped or failed files; failures never abort ingestion.
func (s *IngestService) ingestFile(ctx context.Context, path string) bool {
	name := filepath.Base(path)
	if !domain.Supported(name) {
		return false
	}

	data, err := s.source.Read(path)
	if err != nil {
		logger.Warn("skipping %s: %v", name, err)
		return false
	}

	text, err := s.registry.Extract(ctx, path, data)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			return false
		}
		logger.Warn("skipping %s: %v", name, err)
		return false
	}

	// A re-upload is a new document identity: Replace drops any previous
	// record for this filename and inserts the new one in one step, so
	// racing events for the same file cannot leave a stale duplicate.
	s.store.Replace(domain.DocumentRecord{
		ID:         uuid.New().String(),
		Name:       name,
		Text:       text,
		IngestedAt: time.Now(),
	})
	logger.Info("ingested %s (%d bytes of text)", name, len(text))
	return true
}

// sleepCtx waits d or until ctx is done. Returns false when ctx won.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// nextBackoff doubles the delay up to the cap.
func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
