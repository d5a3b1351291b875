package gateways

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArtifactFinder_FindByPrefix(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"App_1.0-release-x86.apk",
		"App_1.0-release-x86.apk.sha256",
		"App_1.0-release-x86.apk.asc",
		"App_1.0-release-universal.apk",
		"App_1.0-debug-x86.apk",
		"Other_1.0-release-x86.apk",
		"notes.txt",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "App_1.0-release-dir.apk"), 0750); err != nil {
		t.Fatal(err)
	}

	got, err := NewArtifactFinder().FindByPrefix(dir, "App_1.0-release", ".apk")
	if err != nil {
		t.Fatalf("FindByPrefix() error = %v", err)
	}
	want := []string{
		filepath.Join(dir, "App_1.0-release-universal.apk"),
		filepath.Join(dir, "App_1.0-release-x86.apk"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindByPrefix() mismatch (-want +got):\n%s", diff)
	}
}

func TestArtifactFinder_MissingDirectory(t *testing.T) {
	if _, err := NewArtifactFinder().FindByPrefix(filepath.Join(t.TempDir(), "absent"), "App", ".apk"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestArtifactFinder_GlobMetaInPrefix(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"App[1]_1.0-debug.apk", "App1_1.0-debug.apk"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	got, err := NewArtifactFinder().FindByPrefix(dir, "App[1]_1.0", ".apk")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "App[1]_1.0-debug.apk" {
		t.Errorf("FindByPrefix() = %v", got)
	}
}
