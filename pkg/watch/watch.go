// Package watch re-runs generation when services appear or disappear.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/pipegen/pkg/errors"
	"github.com/arthur-debert/pipegen/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce batches the bursts of events produced by tools creating
// several directories at once
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Watcher
type Options struct {
	ServicesDir string
	Debounce    time.Duration
	// OnChange runs after a debounced batch of relevant events.
	// Its errors are logged; watching continues.
	OnChange func(ctx context.Context) error
}

// Watcher watches the services directory for service directories being
// created, removed or renamed. Nested changes inside a service are ignored.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dir      string
	debounce time.Duration
	onChange func(ctx context.Context) error
	logger   zerolog.Logger
}

// New creates a watcher on opts.ServicesDir. The directory must exist.
func New(opts Options) (*Watcher, error) {
	if opts.OnChange == nil {
		return nil, errors.New(errors.ErrInvalidInput, "watch requires an OnChange callback")
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "failed to create watcher")
	}
	if err := fsw.Add(opts.ServicesDir); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrapf(err, errors.ErrWatch, "failed to watch %s", opts.ServicesDir).
			WithDetail("path", opts.ServicesDir)
	}

	return &Watcher{
		fsw:      fsw,
		dir:      filepath.Clean(opts.ServicesDir),
		debounce: debounce,
		onChange: opts.OnChange,
		logger:   logging.GetLogger("watch"),
	}, nil
}

// Run blocks until ctx is done or the underlying watcher closes.
// The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("Error closing watcher")
		}
	}()

	w.logger.Info().Str("dir", w.dir).Dur("debounce", w.debounce).Msg("Watching services directory")

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Msg("Context cancelled, stopping watch")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Service change detected")
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("Watcher error")

		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				w.logger.Error().Err(err).Msg("Regeneration failed")
			}
		}
	}
}

// relevant keeps events for non-hidden direct children of the services dir
// that create, remove or rename a directory
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Dir(filepath.Clean(event.Name)) != w.dir {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		return err == nil && info.IsDir()
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// Gone already, so there is no way to tell a file from a directory
		return true
	default:
		return false
	}
}
