// Package reminder drives periodic reminder evaluation outside the TUI.
package reminder

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"mtodo/internal/domain/repository"
	"mtodo/internal/domain/service"
	"mtodo/internal/domain/valueobject"
	"mtodo/internal/infrastructure/notify"
	"mtodo/pkg/filesystem"
)

// NotificationTitle is the title of every reminder notification
const NotificationTitle = "mtodo reminders"

// DefaultSettleDelay is how long the watcher waits after the last write
// to the data file before reloading it
const DefaultSettleDelay = 250 * time.Millisecond

// Watcher evaluates reminders on start, on every tick and after the data
// file changes on disk. It only reads the store.
type Watcher struct {
	repo      repository.TodoRepository
	reminders *service.ReminderService
	notifier  notify.Notifier
	logger    *log.Logger
	interval  time.Duration
	settle    time.Duration
	now       func() time.Time

	lastMessage string
}

// WatcherOption configures a Watcher
type WatcherOption func(*Watcher)

// WithClock replaces time.Now
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		w.now = now
	}
}

// WithSettleDelay changes the delay between a file event and the reload
func WithSettleDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.settle = d
	}
}

// NewWatcher creates a new Watcher
func NewWatcher(
	repo repository.TodoRepository,
	reminders *service.ReminderService,
	notifier notify.Notifier,
	logger *log.Logger,
	interval time.Duration,
	opts ...WatcherOption,
) *Watcher {
	w := &Watcher{
		repo:      repo,
		reminders: reminders,
		notifier:  notifier,
		logger:    logger,
		interval:  interval,
		settle:    DefaultSettleDelay,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Check loads the store and evaluates reminders once. A nil report means
// nothing is overdue or due soon.
func (w *Watcher) Check(ctx context.Context) (*service.ReminderReport, error) {
	tasks, err := w.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return w.reminders.Evaluate(tasks, valueobject.Today(w.now)), nil
}

// Run blocks until ctx is cancelled. Ticks always notify; file changes
// notify only when the reminder text differs from the last one sent.
func (w *Watcher) Run(ctx context.Context) error {
	if w.interval <= 0 {
		return errors.New("reminder interval must be positive")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	target := filepath.Clean(w.repo.Location())
	if err := filesystem.EnsureDir(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var settle *time.Timer
	var settleC <-chan time.Time
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	w.evaluate(ctx, true)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("reminder watcher stopped")
			return nil

		case <-ticker.C:
			w.evaluate(ctx, true)

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(w.settle)
			} else {
				settle.Reset(w.settle)
			}
			settleC = settle.C

		case <-settleC:
			settleC = nil
			w.logger.Debug("data file changed, reloading", "path", target)
			w.evaluate(ctx, false)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "err", err)
		}
	}
}

func (w *Watcher) evaluate(ctx context.Context, always bool) {
	report, err := w.Check(ctx)
	if err != nil {
		w.logger.Warn("could not load todos for reminders", "location", w.repo.Location(), "err", err)
		return
	}
	if report == nil {
		w.logger.Debug("no reminders")
		w.lastMessage = ""
		return
	}

	msg := report.Message()
	if !always && msg == w.lastMessage {
		return
	}
	w.lastMessage = msg

	w.logger.Debug("reminder", "overdue", report.Overdue.Count, "due_soon", report.DueSoon.Count)
	if err := w.notifier.Notify(ctx, notify.Notification{Title: NotificationTitle, Body: msg}); err != nil {
		w.logger.Warn("could not deliver reminder", "err", err)
	}
}
