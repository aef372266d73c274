package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lgbarn/clichess-go/internal/config"
	chesserrors "github.com/lgbarn/clichess-go/internal/errors"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clichess.log")
	logger, err := New(&config.LogConfig{Level: "debug", JSON: true, File: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Debug("move applied", zap.String("move", "e2e4"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	got := string(data)
	for _, want := range []string{`"msg":"move applied"`, `"move":"e2e4"`, `"level":"debug"`} {
		if !strings.Contains(got, want) {
			t.Errorf("log output %q missing %s", got, want)
		}
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clichess.log")
	logger, err := New(&config.LogConfig{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("warn message should be logged")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&config.LogConfig{Level: "loud"})
	if !errors.Is(err, chesserrors.ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestNew_NilConfig(t *testing.T) {
	logger, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error: %v", err)
	}
	if !logger.Core().Enabled(zap.InfoLevel) || logger.Core().Enabled(zap.DebugLevel) {
		t.Error("default logger should log at info level")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("OrNop() should return the given logger")
	}
}
