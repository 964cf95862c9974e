package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Parse.Validation != "first" {
		t.Errorf("expected validation 'first', got %s", cfg.Parse.Validation)
	}
	if cfg.Dump.Limit != 20 {
		t.Errorf("expected dump limit 20, got %d", cfg.Dump.Limit)
	}
	if cfg.Dump.Section != "" {
		t.Errorf("expected empty section filter, got %s", cfg.Dump.Section)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
parse:
  validation: "all"

dump:
  limit: 100
  section: "bone"

logging:
  level: "debug"
  log_file: "pmxtool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parse.Validation != "all" {
		t.Errorf("expected validation 'all', got %s", cfg.Parse.Validation)
	}
	if cfg.Dump.Limit != 100 {
		t.Errorf("expected dump limit 100, got %d", cfg.Dump.Limit)
	}
	if cfg.Dump.Section != "bone" {
		t.Errorf("expected section 'bone', got %s", cfg.Dump.Section)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "pmxtool.log" {
		t.Errorf("expected log file 'pmxtool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
dump:
  limit: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS; it just has to be a real absolute path.
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists yet.
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "pmxtool.yaml")
	if err := os.WriteFile(configPath, []byte("dump:\n  limit: 5\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find pmxtool.yaml in current directory")
	}
}

func TestOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		verify    func(t *testing.T, cfg *Config)
	}{
		{
			name:      "debug",
			overrides: Overrides{Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:      "log file",
			overrides: Overrides{LogFile: "custom.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "custom.log" {
					t.Errorf("expected log file 'custom.log', got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name:      "validation mode",
			overrides: Overrides{Validation: "skip"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Parse.Validation != "skip" {
					t.Errorf("expected validation 'skip', got %s", cfg.Parse.Validation)
				}
			},
		},
		{
			name:      "dump limit",
			overrides: Overrides{Limit: 7},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Dump.Limit != 7 {
					t.Errorf("expected dump limit 7, got %d", cfg.Dump.Limit)
				}
			},
		},
		{
			name:      "zero values leave defaults",
			overrides: Overrides{},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Dump.Limit != 20 || cfg.Parse.Validation != "first" {
					t.Error("zero overrides must not touch the defaults")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.overrides.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
dump:
  limit: 50
  section: "morph"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath, Overrides{Limit: 10})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Limit comes from the override, not the file.
	if cfg.Dump.Limit != 10 {
		t.Errorf("expected limit 10 from override, got %d", cfg.Dump.Limit)
	}
	// Section comes from the file since no override was given.
	if cfg.Dump.Section != "morph" {
		t.Errorf("expected section 'morph' from file, got %s", cfg.Dump.Section)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Dump.Limit = 42
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Dump.Limit != 42 {
		t.Errorf("round-tripped limit = %d, want 42", loaded.Dump.Limit)
	}
}
