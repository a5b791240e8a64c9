package config

import (
	"bytes"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOVBOARD_DB_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if filepath.Base(cfg.DBPath) != "govboard.db" {
		t.Errorf("expected default db path to end in govboard.db, got %s", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.HeatmapConcurrency != 8 {
		t.Errorf("expected heatmap concurrency 8, got %d", cfg.HeatmapConcurrency)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GOVBOARD_DB_PATH", "/tmp/custom.db")
	t.Setenv("GOVBOARD_LOG_LEVEL", "debug")
	t.Setenv("GOVBOARD_ACTOR", "pmo-lead")
	t.Setenv("GOVBOARD_HEATMAP_CONCURRENCY", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("expected /tmp/custom.db, got %s", cfg.DBPath)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.SlogLevel())
	}
	if cfg.Actor != "pmo-lead" {
		t.Errorf("expected actor pmo-lead, got %s", cfg.Actor)
	}
	if cfg.HeatmapConcurrency != 2 {
		t.Errorf("expected concurrency 2, got %d", cfg.HeatmapConcurrency)
	}
}

func TestLoad_RejectsBadConcurrency(t *testing.T) {
	t.Setenv("GOVBOARD_DB_PATH", "/tmp/custom.db")
	t.Setenv("GOVBOARD_HEATMAP_CONCURRENCY", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for zero concurrency")
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	cfg := &Config{LogLevel: "info", LogFormat: "json"}
	var buf bytes.Buffer

	cfg.NewLogger(&buf).Info("sweep complete", "escalated", 2)

	if !strings.Contains(buf.String(), `"escalated":2`) {
		t.Errorf("expected JSON output, got %s", buf.String())
	}
}

func TestParseHealthWeights(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid alternate weights",
			raw:  `{"version":1,"on_time_delivery":0.2,"budget_performance":0.2,"risk":0.2,"compliance":0.2,"benefits_realization":0.2}`,
		},
		{
			name:    "weights not summing to one",
			raw:     `{"version":1,"on_time_delivery":0.9,"budget_performance":0.9}`,
			wantErr: true,
		},
		{
			name:    "unknown version",
			raw:     `{"version":7,"on_time_delivery":1}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			raw:     `{not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseHealthWeights(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got weights %+v", w)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(w.Sum()-1) > 1e-9 {
				t.Errorf("expected weights to sum to 1, got %v", w.Sum())
			}
		})
	}
}

func TestDefaultHealthWeights_RoundTrip(t *testing.T) {
	raw, err := Encode(DefaultHealthWeights())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	w, err := ParseHealthWeights(raw)
	if err != nil {
		t.Fatalf("ParseHealthWeights failed: %v", err)
	}
	if w.OnTimeDelivery != 0.30 || w.BenefitsRealization != 0.10 {
		t.Errorf("unexpected weights %+v", w)
	}
}

func TestParseSLAHours(t *testing.T) {
	th, err := ParseSLAHours(`{"version":1,"level_1":4,"level_2":8,"level_3":24,"level_4":48}`)
	if err != nil {
		t.Fatalf("ParseSLAHours failed: %v", err)
	}
	if th.Level1Hours != 4 || th.Level4Hours != 48 {
		t.Errorf("unexpected thresholds %+v", th)
	}

	if _, err := ParseSLAHours(`{"version":1,"level_1":48,"level_2":24,"level_3":72,"level_4":168}`); err == nil {
		t.Error("expected error for descending thresholds")
	}
}
