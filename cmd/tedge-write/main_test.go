package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestWriteNewFile(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "app.conf")

	_, _, err := execute(t, "key=value\n", "--config-dir", tmpDir, "--mode", "600", dest)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(got) != "key=value\n" {
		t.Errorf("content = %q, want %q", got, "key=value\n")
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 0600", perm)
	}
}

func TestOverwriteKeepsMode(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "app.conf")
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	_, _, err := execute(t, "new\n", "--config-dir", tmpDir, "--mode", "600", dest)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	got, _ := os.ReadFile(dest)
	if string(got) != "new\n" {
		t.Errorf("content = %q, want %q", got, "new\n")
	}
	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("pre-existing file mode changed to %o, want 0644", perm)
	}
}

func TestMakeDirs(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "a", "b", "file.conf")

	_, _, err := execute(t, "data", "--config-dir", tmpDir, "--makedirs", dest)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmpDir, "a", "b"))
	if err != nil {
		t.Fatalf("expected parent directories to exist: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o755 {
		t.Errorf("created directory mode = %o, want 0755", perm)
	}
}

func TestRejectsNonCanonicalPath(t *testing.T) {
	tmpDir := t.TempDir()
	dest := tmpDir + "/sub/../escape.conf"

	_, _, err := execute(t, "data", "--config-dir", tmpDir, dest)
	if err == nil {
		t.Fatal("expected error for non-canonical destination")
	}
	if _, statErr := os.Stat(filepath.Join(tmpDir, "escape.conf")); !os.IsNotExist(statErr) {
		t.Error("non-canonical destination was written")
	}
}

func TestRejectsRelativePath(t *testing.T) {
	_, _, err := execute(t, "data", "--config-dir", t.TempDir(), "relative.conf")
	if err == nil {
		t.Fatal("expected error for relative destination")
	}
}

func TestDebugOutput(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "app.conf")

	_, stderr, err := execute(t, "data", "--config-dir", tmpDir, "--debug", dest)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !strings.Contains(stderr, "[DEBUG]") {
		t.Errorf("stderr = %q, want debug output", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !strings.Contains(stdout, "tedge-write version") {
		t.Errorf("version output = %q", stdout)
	}
}
