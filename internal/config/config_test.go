package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Target != "mtmc16" || cfg.Title != "Untitled" || cfg.Tempo != 120 || cfg.ZeroClears {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "target: hex\nzero_clears: true\nout_dir: build\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Target != "hex" || !cfg.ZeroClears {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Title != "Untitled" || cfg.Tempo != 120 {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
	if cfg.OutDir != filepath.Join(dir, "build") {
		t.Errorf("out_dir = %q, want it relative to the file", cfg.OutDir)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"bad yaml", "target: [hex", "parsing"},
		{"wrong type", "tempo: fast\n", "parsing"},
		{"negative tempo", "tempo: -4\n", "tempo must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected error containing %q, got %v", tt.msg, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "target: c\n")
	nested := filepath.Join(root, "songs", "live")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}

	cfg, err := Resolve(nested)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Target != "c" {
		t.Errorf("Resolve target = %q, want c", cfg.Target)
	}
}

func TestFindPrefersNearest(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "target: c\n")
	inner := filepath.Join(root, "inner")
	if err := os.Mkdir(inner, 0755); err != nil {
		t.Fatal(err)
	}
	want := writeConfig(t, inner, "target: rust\n")

	got, err := Find(inner)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Errorf("Find = %q, want %q", got, want)
	}
}

func TestResolveWithoutFile(t *testing.T) {
	// t.TempDir lives under the system temp directory, which is not
	// expected to carry a project file.
	dir := t.TempDir()
	if path, _ := Find(dir); path != "" {
		t.Skipf("found unrelated config at %s", path)
	}

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
