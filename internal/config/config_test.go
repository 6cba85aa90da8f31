package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default()
	if cfg.CatchRadius != d.CatchRadius || cfg.MaxCache != 30 || !cfg.WrapFolder || cfg.AccentColor != (Color{255, 0, 75}) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "catch_radius: 12\nclass_names: [cat, dog]\nbackground_color: [1, 2, 3]\nwrap_folder: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CatchRadius != 12 {
		t.Errorf("expected catch radius 12, got %v", cfg.CatchRadius)
	}
	if cfg.WrapFolder {
		t.Error("wrap_folder should be false")
	}
	if cfg.BackgroundColor != (Color{1, 2, 3}) {
		t.Errorf("unexpected background %v", cfg.BackgroundColor)
	}
	if cfg.WindowWidth != 1400 || !cfg.AutoSave {
		t.Errorf("unset fields should keep defaults: %+v", cfg)
	}
	if cfg.ClassName(1) != "dog" || cfg.ClassName(7) != "7" {
		t.Errorf("unexpected class names %q %q", cfg.ClassName(1), cfg.ClassName(7))
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("catch_radius: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if cfg == nil || cfg.CatchRadius != 20 {
		t.Errorf("expected defaults alongside the error, got %+v", cfg)
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := &Config{CatchRadius: -3, DefaultClass: -1, MaxCache: -5, WindowWidth: 10, LogLevel: "loud"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for the log level")
	}
	if cfg.CatchRadius != 20 || cfg.DefaultClass != 0 || cfg.MaxCache != 0 || cfg.WindowWidth != 1400 {
		t.Errorf("values not clamped: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level reset to info, got %q", cfg.LogLevel)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.ClassNames = []string{"person"}
	cfg.LogLevel = "debug"
	cfg.AccentColor = Color{10, 20, 30}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ClassName(0) != "person" || loaded.AccentColor != cfg.AccentColor || loaded.Level() != slog.LevelDebug {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestSaveRejectsInvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.LogLevel = "loud"

	if err := cfg.Save(path); err == nil {
		t.Fatal("expected an error for an invalid log level")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("nothing should be written, stat returned %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level reset to info, got %q", cfg.LogLevel)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
}
