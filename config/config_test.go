package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" || cfg.WrapWidth != 72 {
		t.Errorf("defaults = %+v", cfg)
	}
	if !strings.HasSuffix(cfg.SaveDir, filepath.Join(".adventcore", "saves")) {
		t.Errorf("save dir = %q", cfg.SaveDir)
	}
	if !strings.HasSuffix(cfg.LogFile, filepath.Join(".adventcore", "adventcore.log")) {
		t.Errorf("log file = %q", cfg.LogFile)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "save_dir: "+dir+"\ncompress_saves: true\nlog_level: debug\nplain: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SaveDir != dir || !cfg.CompressSaves || cfg.LogLevel != "debug" || !cfg.Plain {
		t.Errorf("cfg = %+v", cfg)
	}
	// Keys not in the file keep their defaults.
	if cfg.LogFormat != "text" || cfg.WrapWidth != 72 {
		t.Errorf("unset keys lost defaults: %+v", cfg)
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	cfg, err := Load(writeConfig(t, "save_dir: ~/games/saves\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.HasPrefix(cfg.SaveDir, "~") {
		t.Errorf("save dir not expanded: %q", cfg.SaveDir)
	}
	if !strings.HasSuffix(cfg.SaveDir, filepath.Join("games", "saves")) {
		t.Errorf("save dir = %q", cfg.SaveDir)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "save_dir: [unclosed\n"},
		{"wrong type", "wrap_width: wide\n"},
		{"negative width", "wrap_width: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "config.yaml") {
				t.Errorf("error should name the file: %v", err)
			}
			if cfg != Default() {
				t.Errorf("failed load should return defaults, got %+v", cfg)
			}
		})
	}
}

func TestSavePath(t *testing.T) {
	cfg := Config{SaveDir: "/saves"}
	if got := cfg.SavePath("slot1"); got != filepath.Join("/saves", "slot1.json") {
		t.Errorf("SavePath = %q", got)
	}
	if got := cfg.SavePath(""); got != filepath.Join("/saves", "quicksave.json") {
		t.Errorf("default slot = %q", got)
	}
	cfg.CompressSaves = true
	if got := cfg.SavePath("slot1"); got != filepath.Join("/saves", "slot1.json.zst") {
		t.Errorf("compressed SavePath = %q", got)
	}
}

func TestSavePath_StaysInSaveDir(t *testing.T) {
	cfg := Config{SaveDir: "/saves"}
	tests := []struct {
		slot string
		want string
	}{
		{"../../x", "x.json"},
		{"../etc/passwd", "passwd.json"},
		{"/tmp/evil", "evil.json"},
		{`..\..\win`, "win.json"},
		{"a/b/c", "c.json"},
		{"..", "quicksave.json"},
		{".", "quicksave.json"},
		{"/", "quicksave.json"},
		{"../", "quicksave.json"},
		{".hidden", ".hidden.json"},
	}
	for _, tt := range tests {
		got := cfg.SavePath(tt.slot)
		if got != filepath.Join("/saves", tt.want) {
			t.Errorf("SavePath(%q) = %q, want %q", tt.slot, got, tt.want)
		}
		if filepath.Dir(got) != "/saves" {
			t.Errorf("SavePath(%q) escaped the save dir: %q", tt.slot, got)
		}
	}
}
