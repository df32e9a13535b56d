package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, LevelInfo, FormatText)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("shown", Count(3))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "msg=shown count=3") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, LevelDebug, FormatJSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("parsed", Calendar(""), Output("out.csv"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry[KeyCalendar] != "all" {
		t.Errorf("calendar = %v, want all", entry[KeyCalendar])
	}
	if entry[KeyOutput] != "out.csv" {
		t.Errorf("output = %v, want out.csv", entry[KeyOutput])
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud", FormatText); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, err := New(&bytes.Buffer{}, LevelInfo, "xml"); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := WithOperation(slog.New(slog.NewTextHandler(&buf, nil)), "export")
	logger.Info("x")
	if !strings.Contains(buf.String(), "operation=export") {
		t.Errorf("missing operation attribute: %s", buf.String())
	}
}

func TestWithCalendar(t *testing.T) {
	var buf bytes.Buffer
	logger := WithCalendar(slog.New(slog.NewTextHandler(&buf, nil)), "Work")
	logger.Info("x")
	if !strings.Contains(buf.String(), "calendar=Work") {
		t.Errorf("missing calendar attribute: %s", buf.String())
	}
}

func TestAttrs(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{"operation", Operation("events"), KeyOperation, "events"},
		{"calendar", Calendar("Home"), KeyCalendar, "Home"},
		{"calendar all", Calendar(""), KeyCalendar, "all"},
		{"output", Output("a.csv"), KeyOutput, "a.csv"},
		{"format", Format("ics"), KeyFormat, "ics"},
		{"count", Count(7), KeyCount, "7"},
		{"duration", Duration(2 * time.Second), KeyDuration, "2s"},
		{"status", Status(StatusSuccess), KeyStatus, StatusSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.key)
			}
			if tt.attr.Value.String() != tt.want {
				t.Errorf("value = %q, want %q", tt.attr.Value.String(), tt.want)
			}
		})
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("test error"))
	if attr.Key != KeyError || attr.Value.String() != "test error" {
		t.Errorf("Err() = %v", attr)
	}

	nilAttr := Err(nil)
	if nilAttr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty", nilAttr.Key)
	}
}
