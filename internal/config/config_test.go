package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	Init()
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("version = %d, want 1", cfg.Version)
	}
	if cfg.CheckTimeout != 2*time.Second {
		t.Fatalf("check_timeout = %v, want 2s", cfg.CheckTimeout)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "version: 1\nproject_path: /home/u/app\ncheck_timeout: 5s\ncandidate_paths:\n  - /a.json\n  - /b.json\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) = %v", path, err)
	}
	if cfg.ProjectPath != "/home/u/app" {
		t.Fatalf("project_path = %q", cfg.ProjectPath)
	}
	if cfg.CheckTimeout != 5*time.Second {
		t.Fatalf("check_timeout = %v", cfg.CheckTimeout)
	}
	if len(cfg.CandidatePaths) != 2 {
		t.Fatalf("candidate_paths = %v", cfg.CandidatePaths)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	resetViper(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing explicit file should be an error")
	}
}

func TestEnvOverride(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())
	t.Setenv("MCPDOCTOR_PROJECT_PATH", "/from/env")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ProjectPath != "/from/env" {
		t.Fatalf("project_path = %q, want env override", cfg.ProjectPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"nil config", nil, true},
		{"defaults", Default(), false},
		{"version zero", &Config{Version: 0, CheckTimeout: time.Second}, true},
		{"negative timeout", &Config{Version: 1, CheckTimeout: -time.Second}, true},
		{"null byte in path", &Config{Version: 1, ConfigPath: "/bad\x00path"}, true},
		{"null byte in candidate", &Config{Version: 1, CandidatePaths: []string{"/ok", "/bad\x00"}}, true},
		{"paths optional", &Config{Version: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.cfg)
			if (len(errs) > 0) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}
