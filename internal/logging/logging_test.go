package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"", log.WarnLevel},
		{"nonsense", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("warn level drops debug and info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "warn")

		logger.Debug("loaded store", "tasks", 3)
		logger.Info("saved store")

		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("debug level writes fields with prefix", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "debug")

		logger.Debug("loaded store", "tasks", 3)

		out := buf.String()
		for _, want := range []string{Prefix, "loaded store", "tasks=3"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got %q", want, out)
			}
		}
	})
}
