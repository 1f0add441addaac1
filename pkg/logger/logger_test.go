package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fiasapi/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{
			name:    "valid config with info level",
			cfg:     &config.LoggingConfig{Level: "info"},
			wantErr: false,
		},
		{
			name:    "valid config with debug level",
			cfg:     &config.LoggingConfig{Level: "debug"},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			cfg:     &config.LoggingConfig{Level: "invalid"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fias.log")

	logger, err := New(&config.LoggingConfig{Level: "info", File: path})
	if err != nil {
		t.Fatalf("New() with file output failed: %v", err)
	}

	logger.Info("written to file")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected log file to be created: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	valid := []string{"debug", "info", "warn", "error", "DEBUG", "Info"}
	for _, level := range valid {
		if _, err := parseLogLevel(level); err != nil {
			t.Errorf("parseLogLevel(%q) failed: %v", level, err)
		}
	}

	if _, err := parseLogLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestTestLogger(t *testing.T) {
	log := NewTestLogger()

	log.Info("plain message")
	log.WarnWithFields("with fields", map[string]interface{}{"attempt": 2})

	if !log.HasMessage("plain message") {
		t.Error("Expected captured message")
	}

	warnings := log.MessagesByLevel("WARN")
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Fields["attempt"] != 2 {
		t.Errorf("Expected attempt field, got %v", warnings[0].Fields)
	}
}

func TestTestLoggerDerivedFields(t *testing.T) {
	root := NewTestLogger()

	derived := root.WithField("portal", "https://fias.nalog.ru").WithError(errors.New("boom"))
	derived.Error("request failed")

	// Derived loggers record into the same root
	messages := root.MessagesByLevel("ERROR")
	if len(messages) != 1 {
		t.Fatalf("Expected 1 error message on the root, got %d", len(messages))
	}
	if messages[0].Fields["portal"] != "https://fias.nalog.ru" {
		t.Errorf("Expected portal field, got %v", messages[0].Fields)
	}
	if messages[0].Fields["error"] != "boom" {
		t.Errorf("Expected error field, got %v", messages[0].Fields)
	}
}

func TestSetLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	replacement := NewTestLogger()
	SetLogger(replacement)

	if GetLogger() != Logger(replacement) {
		t.Error("Expected GetLogger to return the replacement")
	}
}
