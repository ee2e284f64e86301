package reminder

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtodo/internal/domain/entity"
	"mtodo/internal/domain/service"
	"mtodo/internal/domain/valueobject"
	"mtodo/internal/infrastructure/notify"
	"mtodo/internal/infrastructure/persistence/filesystem"
)

var fixedNow = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	ch   chan notify.Notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan notify.Notification, 16)}
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
	r.ch <- n
	return nil
}

func (r *recordingNotifier) next(t *testing.T) notify.Notification {
	t.Helper()
	select {
	case n := <-r.ch:
		return n
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for notification")
		return notify.Notification{}
	}
}

func task(t *testing.T, title string, due valueobject.Date, completed bool) *entity.Task {
	t.Helper()
	task, err := entity.ReconstructTask(valueobject.NewTaskID(), title, "", "", due,
		valueobject.PriorityMedium, completed, fixedNow)
	require.NoError(t, err)
	return task
}

func newWatcher(t *testing.T, interval time.Duration) (*Watcher, *filesystem.TodoRepositoryImpl, *recordingNotifier) {
	t.Helper()
	repo, err := filesystem.NewTodoRepository(t.TempDir(), "")
	require.NoError(t, err)
	n := newRecordingNotifier()
	w := NewWatcher(repo, service.NewReminderService(service.DefaultMaxListed), n, log.New(io.Discard), interval,
		WithClock(func() time.Time { return fixedNow }),
		WithSettleDelay(10*time.Millisecond),
	)
	return w, repo, n
}

func TestCheck_EmptyStoreHasNoReport(t *testing.T) {
	w, _, _ := newWatcher(t, time.Hour)
	report, err := w.Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestCheck_ReportsOverdueAndDueSoon(t *testing.T) {
	w, repo, _ := newWatcher(t, time.Hour)
	today := valueobject.DateOf(fixedNow)
	require.NoError(t, repo.Save(context.Background(), []*entity.Task{
		task(t, "Late", today.AddDays(-1), false),
		task(t, "Soon", today.AddDays(1), false),
		task(t, "Done", today.AddDays(-3), true),
	}))

	report, err := w.Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Overdue.Count)
	assert.Equal(t, []string{"Late"}, report.Overdue.Entries)
	assert.Equal(t, []string{"Soon (due: Feb 10, 2026)"}, report.DueSoon.Entries)
}

func TestRun_NotifiesOnStartAndOnFileChange(t *testing.T) {
	w, repo, n := newWatcher(t, time.Hour)
	today := valueobject.DateOf(fixedNow)
	require.NoError(t, repo.Save(context.Background(), []*entity.Task{
		task(t, "Late", today.AddDays(-1), false),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	first := n.next(t)
	assert.Equal(t, NotificationTitle, first.Title)
	assert.Contains(t, first.Body, "1 overdue task(s)")

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, repo.Save(context.Background(), []*entity.Task{
		task(t, "Late", today.AddDays(-1), false),
		task(t, "Later", today.AddDays(-2), false),
	}))

	second := n.next(t)
	assert.Contains(t, second.Body, "2 overdue task(s)")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_RejectsNonPositiveInterval(t *testing.T) {
	w, _, _ := newWatcher(t, 0)
	assert.Error(t, w.Run(context.Background()))
}
