package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/meshxform/pkg/affine"
)

// isolate keeps discovered config files and MESHXFORM_ variables out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, EnvPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Transform.Scale != "1" {
		t.Errorf("expected scale 1, got %s", cfg.Transform.Scale)
	}
	if cfg.Transform.Round != "" {
		t.Errorf("expected rounding disabled, got %q", cfg.Transform.Round)
	}
	if cfg.Output.Progress != ProgressAuto {
		t.Errorf("expected progress auto, got %s", cfg.Output.Progress)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	params, err := cfg.Params()
	if err != nil {
		t.Fatalf("default params: %v", err)
	}
	m, err := params.Matrix()
	if err != nil {
		t.Fatalf("default matrix: %v", err)
	}
	if !m.ApproxEqual(affine.Identity(), 1e-12) {
		t.Errorf("default transform is not identity:\n%s", m)
	}

	r, err := cfg.Rounding()
	if err != nil || r.Enabled() {
		t.Errorf("default rounding = %v, %v", r, err)
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
transform:
  pivot: "1,2,3"
  scale: "2"
  rotation: "90,0,0,1"
  round: "3"
output:
  progress: never
logging:
  level: debug
  log_file: meshxform.log
`)

	cfg, err := Load(Flags{ConfigPath: path})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Transform.Pivot != "1,2,3" {
		t.Errorf("expected pivot 1,2,3, got %s", cfg.Transform.Pivot)
	}
	if cfg.Transform.Scale != "2" {
		t.Errorf("expected scale 2, got %s", cfg.Transform.Scale)
	}
	if cfg.Transform.Rotation != "90,0,0,1" {
		t.Errorf("expected rotation 90,0,0,1, got %s", cfg.Transform.Rotation)
	}
	// Not in the file, so the default survives.
	if cfg.Transform.Translation != "0,0,0" {
		t.Errorf("expected default translation, got %s", cfg.Transform.Translation)
	}
	if cfg.Transform.Round != "3" {
		t.Errorf("expected round 3, got %s", cfg.Transform.Round)
	}
	if cfg.Output.Progress != ProgressNever {
		t.Errorf("expected progress never, got %s", cfg.Output.Progress)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshxform.log" {
		t.Errorf("expected log file 'meshxform.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
transform:
  pivot: [unclosed
  invalid syntax here
`)

	if _, err := Load(Flags{ConfigPath: path}); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(Flags{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(Flags{})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadDiscoversConfigDir(t *testing.T) {
	isolate(t)
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("transform:\n  scale: \"4\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Flags{})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Transform.Scale != "4" {
		t.Errorf("expected scale 4 from discovered file, got %s", cfg.Transform.Scale)
	}
}

func TestLoadPriority(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
transform:
  pivot: "1,1,1"
  scale: "2"
  translation: "5,0,0"
`)

	t.Setenv("MESHXFORM_TRANSFORM__SCALE", "3")
	t.Setenv("MESHXFORM_TRANSFORM__TRANSLATION", "0,5,0")
	t.Setenv("MESHXFORM_LOGGING__LEVEL", "warn")

	cfg, err := Load(Flags{ConfigPath: path, Scale: "4"})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Flag beats env beats file.
	if cfg.Transform.Scale != "4" {
		t.Errorf("expected scale 4 from flag, got %s", cfg.Transform.Scale)
	}
	// Env beats file.
	if cfg.Transform.Translation != "0,5,0" {
		t.Errorf("expected translation 0,5,0 from env, got %s", cfg.Transform.Translation)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn from env, got %s", cfg.Logging.Level)
	}
	// File beats default.
	if cfg.Transform.Pivot != "1,1,1" {
		t.Errorf("expected pivot 1,1,1 from file, got %s", cfg.Transform.Pivot)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		flags  Flags
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name:  "empty flags keep values",
			flags: Flags{},
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name:  "transform flags",
			flags: Flags{Pivot: "1,2,3", Rotation: "45,0,1,0", Round: "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Transform.Pivot != "1,2,3" || cfg.Transform.Rotation != "45,0,1,0" || cfg.Transform.Round != "0" {
					t.Errorf("unexpected transform %+v", cfg.Transform)
				}
			},
		},
		{
			name:  "logging and progress flags",
			flags: Flags{LogLevel: "error", LogFile: "x.log", Progress: ProgressAlways},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "error" || cfg.Logging.LogFile != "x.log" {
					t.Errorf("unexpected logging %+v", cfg.Logging)
				}
				if cfg.Output.Progress != ProgressAlways {
					t.Errorf("expected progress always, got %s", cfg.Output.Progress)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad progress", func(c *Config) { c.Output.Progress = "sometimes" }, true},
		{"always", func(c *Config) { c.Output.Progress = ProgressAlways }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadRejectsInvalidFlag(t *testing.T) {
	isolate(t)
	if _, err := Load(Flags{Progress: "maybe"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestProgressEnabled(t *testing.T) {
	cfg := Default()
	if !cfg.ProgressEnabled(true) || cfg.ProgressEnabled(false) {
		t.Error("auto should follow the terminal")
	}
	cfg.Output.Progress = ProgressAlways
	if !cfg.ProgressEnabled(false) {
		t.Error("always should draw without a terminal")
	}
	cfg.Output.Progress = ProgressNever
	if cfg.ProgressEnabled(true) {
		t.Error("never should not draw on a terminal")
	}
}

func TestSaveTo(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := Default()
	cfg.Transform.Scale = "2.5"
	cfg.Transform.Round = "2"
	cfg.Logging.Level = "debug"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(Flags{ConfigPath: path})
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestSave(t *testing.T) {
	isolate(t)

	path, err := Default().Save()
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if path != filepath.Join(ConfigDir(), "config.yaml") {
		t.Errorf("unexpected save path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestYAML(t *testing.T) {
	data, err := Default().YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	out := string(data)
	for _, want := range []string{"transform:", "progress: auto", "level: info"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}
