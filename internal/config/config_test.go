package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWithDefaultsFillsOnlyUnset(t *testing.T) {
	custom := Config{SpecDir: "myspecs"}
	merged := custom.WithDefaults(Default())

	if merged.SpecDir != "myspecs" {
		t.Fatalf("SpecDir = %q, want %q", merged.SpecDir, "myspecs")
	}
	if merged.SchemaFile != Default().SchemaFile {
		t.Fatalf("SchemaFile = %q, want default %q", merged.SchemaFile, Default().SchemaFile)
	}
	if merged.CacheDir != Default().CacheDir {
		t.Fatalf("CacheDir = %q, want default %q", merged.CacheDir, Default().CacheDir)
	}
	if merged.MaxDiagnostics != Default().MaxDiagnostics {
		t.Fatalf("MaxDiagnostics = %d, want default %d", merged.MaxDiagnostics, Default().MaxDiagnostics)
	}
}

func TestResolveStringPrecedence(t *testing.T) {
	tests := []struct {
		name                        string
		flag, configValue, fallback string
		want                        string
	}{
		{name: "flag wins", flag: "--from-flag", configValue: "from-config", fallback: "default", want: "--from-flag"},
		{name: "config wins without flag", flag: "", configValue: "from-config", fallback: "default", want: "from-config"},
		{name: "fallback when both empty", flag: "", configValue: "", fallback: "default", want: "default"},
		{name: "whitespace flag ignored", flag: "   ", configValue: "from-config", fallback: "default", want: "from-config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveString(tt.flag, tt.configValue, tt.fallback)
			if got != tt.want {
				t.Fatalf("ResolveString(%q, %q, %q) = %q, want %q", tt.flag, tt.configValue, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestResolveIntPrecedence(t *testing.T) {
	if got := ResolveInt(0, true, 50, 100); got != 0 {
		t.Fatalf("explicit flag=0 should win, got %d", got)
	}
	if got := ResolveInt(0, false, 50, 100); got != 50 {
		t.Fatalf("config value should win over fallback, got %d", got)
	}
	if got := ResolveInt(0, false, 0, 100); got != 100 {
		t.Fatalf("fallback should apply when flag unset and config zero, got %d", got)
	}
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zplspec.toml")
	if err := os.WriteFile(path, []byte("this is not [ valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, loadErr := Load(path)
	if loadErr == nil {
		t.Fatal("expected error for invalid TOML, got nil")
	}
	cfgErr, ok := loadErr.(*Error)
	if !ok || cfgErr.Kind != ErrInvalidTOML {
		t.Fatalf("expected ErrInvalidTOML, got %v", loadErr)
	}
}

func TestLoadRejectsNegativeMaxDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zplspec.toml")
	content := "max_diagnostics = -1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for negative max_diagnostics, got nil")
	}
	cfgErr, ok := err.(*Error)
	if !ok || cfgErr.Kind != ErrNegativeMaxDiagnostics {
		t.Fatalf("expected ErrNegativeMaxDiagnostics, got %v", err)
	}
}

func TestLoadMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zplspec.toml")
	content := "spec_dir = \"cmds\"\nmax_diagnostics = 25\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SpecDir != "cmds" {
		t.Fatalf("SpecDir = %q, want %q", cfg.SpecDir, "cmds")
	}
	if cfg.MaxDiagnostics != 25 {
		t.Fatalf("MaxDiagnostics = %d, want 25", cfg.MaxDiagnostics)
	}
	if cfg.SchemaFile != Default().SchemaFile {
		t.Fatalf("SchemaFile = %q, want default %q", cfg.SchemaFile, Default().SchemaFile)
	}
	if cfg.CacheDir != Default().CacheDir {
		t.Fatalf("CacheDir = %q, want default %q", cfg.CacheDir, Default().CacheDir)
	}
}

func TestFindManifestWalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	manifestPath := filepath.Join(root, "zplspec.toml")
	if err := os.WriteFile(manifestPath, []byte("spec_dir = \"specs\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	found, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest() error: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found")
	}
	resolvedRoot, _ := filepath.EvalSymlinks(manifestPath)
	resolvedFound, _ := filepath.EvalSymlinks(found)
	if resolvedFound != resolvedRoot {
		t.Fatalf("FindManifest() = %q, want %q", found, manifestPath)
	}
}

func TestFindManifestReturnsNotOkWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindManifest(dir)
	if err != nil {
		t.Fatalf("FindManifest() error: %v", err)
	}
	if ok {
		t.Fatal("expected manifest not to be found")
	}
}

func TestLoadFromDirFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, ok, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir() error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false when no manifest present")
	}
	if cfg.SpecDir != Default().SpecDir {
		t.Fatalf("SpecDir = %q, want default %q", cfg.SpecDir, Default().SpecDir)
	}
}
