package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	name string
	args []string
}

func recorder(calls *[]recordedCall, err error) CommandRunner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, recordedCall{name: name, args: args})
		return err
	}
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleNotifier(&buf).Notify(context.Background(), Notification{Title: "Reminder", Body: "• pay rent"}))
	assert.Contains(t, buf.String(), "Reminder")
	assert.Contains(t, buf.String(), "pay rent")
}

func TestDesktopNotifierLinux(t *testing.T) {
	var calls []recordedCall
	n := NewDesktopNotifierWithRunner("linux", recorder(&calls, nil))
	require.NoError(t, n.Notify(context.Background(), Notification{Title: "T", Body: "B"}))
	require.Len(t, calls, 1)
	assert.Equal(t, "notify-send", calls[0].name)
	assert.Equal(t, []string{"T", "B"}, calls[0].args)
}

func TestDesktopNotifierDarwinEscapes(t *testing.T) {
	var calls []recordedCall
	n := NewDesktopNotifierWithRunner("darwin", recorder(&calls, nil))
	require.NoError(t, n.Notify(context.Background(), Notification{Title: "T", Body: `say "hi"`}))
	require.Len(t, calls, 1)
	assert.Equal(t, "osascript", calls[0].name)
	assert.Contains(t, calls[0].args[1], `say \"hi\"`)
}

func TestDesktopNotifierOtherPlatform(t *testing.T) {
	var calls []recordedCall
	n := NewDesktopNotifierWithRunner("plan9", recorder(&calls, nil))
	require.NoError(t, n.Notify(context.Background(), Notification{}))
	assert.Empty(t, calls)
}

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	var calls []recordedCall
	var buf bytes.Buffer
	m := Multi{
		NewDesktopNotifierWithRunner("linux", recorder(&calls, boom)),
		NewConsoleNotifier(&buf),
	}
	err := m.Notify(context.Background(), Notification{Body: "x"})
	assert.ErrorIs(t, err, boom)
	assert.NotEmpty(t, buf.String(), "later notifiers still run")
}
