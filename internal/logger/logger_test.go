package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		" warn ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}
	for in, want := range tests {
		if got := New(in).GetLevel(); got != want {
			t.Fatalf("New(%q).GetLevel() = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithOutputWritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWithOutput("info", &buf)
	l.WithField("user_id", "u-1").Info("signed in")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "signed in" || entry["user_id"] != "u-1" {
		t.Fatalf("entry = %#v", entry)
	}
}
