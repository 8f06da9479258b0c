package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" INFO ":  zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit_WritesJSONLinesToFile(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer, err := Init(Options{Level: "info", Dir: dir})
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	logger.Debug().Msg("hidden")
	logger.Info().Str("identifier", "A").Msg("batch refreshed")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %s", out)
	}
	if !strings.Contains(out, `"identifier":"A"`) || !strings.Contains(out, `"message":"batch refreshed"`) {
		t.Fatalf("log output = %s, want JSON line with identifier", out)
	}
}

func TestInit_NoOutputs(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger, closer, err := Init(Options{})
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	logger.Info().Msg("discarded")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}
