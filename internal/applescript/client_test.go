package applescript

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

// fakeRunner records invocations and answers osascript with canned output
type fakeRunner struct {
	calls     []call
	stdout    string
	stderr    string
	err       error
	launchErr error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if name == "open" {
		return "", "", f.launchErr
	}
	return f.stdout, f.stderr, f.err
}

func newTestClient(t *testing.T, r *fakeRunner) *Client {
	t.Helper()
	client, err := NewClient(WithRunner(r), WithLaunchDelay(0))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("custom runner skips PATH lookup", func(t *testing.T) {
		client, err := NewClient(WithRunner(&fakeRunner{}))
		require.NoError(t, err)
		assert.Equal(t, DefaultLaunchDelay, client.LaunchDelay())
	})

	t.Run("negative launch delay", func(t *testing.T) {
		_, err := NewClient(WithRunner(&fakeRunner{}), WithLaunchDelay(-time.Second))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("default runner requires osascript", func(t *testing.T) {
		if _, err := exec.LookPath("osascript"); err == nil {
			t.Skip("osascript installed")
		}
		_, err := NewClient()
		var bridgeErr *BridgeError
		require.ErrorAs(t, err, &bridgeErr)
		assert.Equal(t, "initialize", bridgeErr.Op)
	})
}

func TestEvents(t *testing.T) {
	r := &fakeRunner{stdout: "Work||Standup||2023-05-01 09:00||2023-05-01 09:15||Daily sync||Room A\n\n"}
	client := newTestClient(t, r)

	out, err := client.Events(context.Background(), "Work")
	require.NoError(t, err)
	assert.Equal(t, "Work||Standup||2023-05-01 09:00||2023-05-01 09:15||Daily sync||Room A", out)

	require.Len(t, r.calls, 2)
	assert.Equal(t, "open", r.calls[0].name)
	assert.Equal(t, []string{"-g", "-a", DefaultApplication}, r.calls[0].args)
	assert.Equal(t, "osascript", r.calls[1].name)
	require.Len(t, r.calls[1].args, 2)
	assert.Equal(t, "-e", r.calls[1].args[0])
	assert.Contains(t, r.calls[1].args[1], `every calendar whose name is "Work"`)
}

func TestEvents_LaunchFailureIsIgnored(t *testing.T) {
	r := &fakeRunner{stdout: "", launchErr: errors.New("exit status 1")}
	client := newTestClient(t, r)

	out, err := client.Events(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEvents_ScriptFailure(t *testing.T) {
	r := &fakeRunner{
		stderr: "execution error: Not authorized to send Apple events to Calendar. (-1743)\n",
		err:    errors.New("exit status 1"),
	}
	client := newTestClient(t, r)

	_, err := client.Events(context.Background(), "Home")
	require.Error(t, err)

	var bridgeErr *BridgeError
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, OpEvents, bridgeErr.Op)
	assert.Equal(t, "Home", bridgeErr.Calendar)
	assert.Equal(t, "execution error: Not authorized to send Apple events to Calendar. (-1743)", bridgeErr.Stderr)
	assert.Contains(t, err.Error(), "(calendar: Home)")
	assert.Contains(t, err.Error(), "-1743")
}

func TestEnsureRunning_Cancelled(t *testing.T) {
	r := &fakeRunner{}
	client, err := NewClient(WithRunner(r), WithLaunchDelay(time.Hour))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = client.EnsureRunning(ctx)
	var bridgeErr *BridgeError
	require.ErrorAs(t, err, &bridgeErr)
	assert.Equal(t, OpLaunch, bridgeErr.Op)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalendars(t *testing.T) {
	r := &fakeRunner{stdout: "Work\nHome\n  \nBirthdays\n"}
	client := newTestClient(t, r)

	names, err := client.Calendars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Work", "Home", "Birthdays"}, names)
	assert.Equal(t, CalendarsScript(), r.calls[1].args[1])
}

func TestCalendars_Empty(t *testing.T) {
	client := newTestClient(t, &fakeRunner{})

	names, err := client.Calendars(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEventsScript(t *testing.T) {
	tests := []struct {
		name     string
		calendar string
		contains string
		excludes string
	}{
		{
			name:     "all calendars",
			calendar: "",
			contains: "set cals to every calendar \n",
			excludes: "whose name",
		},
		{
			name:     "named calendar",
			calendar: "Work",
			contains: `set cals to every calendar whose name is "Work"`,
		},
		{
			name:     "quotes are escaped",
			calendar: `Team "A"`,
			contains: `whose name is "Team \"A\""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := EventsScript(tt.calendar)
			assert.Contains(t, script, tt.contains)
			if tt.excludes != "" {
				assert.NotContains(t, script, tt.excludes)
			}
			assert.Contains(t, script, `"||"`)
			assert.NotContains(t, script, "%!")
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"Work"`, Quote("Work"))
	assert.Equal(t, `"a\\b"`, Quote(`a\b`))
	assert.Equal(t, `"say \"hi\""`, Quote(`say "hi"`))
}

func TestBridgeError(t *testing.T) {
	base := errors.New("boom")
	err := &BridgeError{Op: OpCalendars, Err: base}
	assert.Equal(t, "applescript calendars: boom", err.Error())
	assert.True(t, errors.Is(err, base))
	assert.False(t, strings.Contains(err.Error(), "stderr"))
}
