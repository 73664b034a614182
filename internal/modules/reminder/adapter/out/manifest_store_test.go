package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	reminderadapter "jadwal/internal/modules/reminder/adapter/out"
)

func writeManifest(t *testing.T, base, raw string) string {
	t.Helper()
	pluginsDir := filepath.Join(base, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	path := filepath.Join(pluginsDir, "plugins.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}
	return path
}

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	store := reminderadapter.NewFileManifestStore(base, filepath.Join(base, "plugins", "plugins.json"))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	path := writeManifest(t, base, `[
  {
    "name": "logfile",
    "version": "1.0.0",
    "binary": "plugins/logfile-notifier/logfile-notifier",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true
  }
]`)
	manifests, err := reminderadapter.NewFileManifestStore(base, path).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	want := filepath.Join(base, "plugins", "logfile-notifier", "logfile-notifier")
	if manifests[0].Binary != want {
		t.Fatalf("expected %s, got %s", want, manifests[0].Binary)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	path := writeManifest(t, base, `[
  {
    "name": "logfile",
    "version": "1.0.0",
    "binary": "/tmp/logfile-notifier",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "capabilities": ["command"]
  }
]`)
	if _, err := reminderadapter.NewFileManifestStore(base, path).Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestFileManifestStoreReadsYAML(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	path := filepath.Join(base, "plugins.yaml")
	raw := "- name: logfile\n  version: 1.0.0\n  binary: bin/logfile-notifier\n  sha256: " +
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb\n  enabled: true\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	manifests, err := reminderadapter.NewFileManifestStore(base, path).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 || !manifests[0].Enabled || manifests[0].Version != "1.0.0" {
		t.Fatalf("unexpected manifests %+v", manifests)
	}
	if want := filepath.Join(base, "bin", "logfile-notifier"); manifests[0].Binary != want {
		t.Fatalf("expected %s, got %s", want, manifests[0].Binary)
	}
}

func TestFileManifestStoreRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	entry := `{"name":"logfile","version":"1.0.0","binary":"/bin/x","sha256":"","enabled":true}`
	path := writeManifest(t, base, "["+entry+","+entry+"]")
	if _, err := reminderadapter.NewFileManifestStore(base, path).Load(context.Background()); err == nil {
		t.Fatalf("expected duplicate plugin error")
	}
}
