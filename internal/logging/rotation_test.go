package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTinyWriter rotates after every write larger than a few bytes.
func newTinyWriter(t *testing.T, backups int) (*RotatingWriter, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	rw, err := NewRotatingWriter(path, RotationConfig{MaxBackups: backups})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	rw.maxBytes = 10
	t.Cleanup(func() { rw.Close() })
	return rw, path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRotatingWriterCreatesParentDir(t *testing.T) {
	_, path := newTinyWriter(t, 1)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file missing: %v", err)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	rw, path := newTinyWriter(t, 2)

	for _, line := range []string{"first-123\n", "second-12\n", "third-123\n", "fourth-12\n"} {
		if _, err := rw.Write([]byte(line)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	if got := readFile(t, path); got != "fourth-12\n" {
		t.Errorf("current = %q", got)
	}
	if got := readFile(t, path+".1"); got != "third-123\n" {
		t.Errorf("backup 1 = %q", got)
	}
	if got := readFile(t, path+".2"); got != "second-12\n" {
		t.Errorf("backup 2 = %q", got)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("backup 3 should not exist, stat err = %v", err)
	}
}

func TestRotatingWriterNoBackups(t *testing.T) {
	rw, path := newTinyWriter(t, 0)
	rw.Write([]byte("first-123\n"))
	rw.Write([]byte("second-12\n"))

	if got := readFile(t, path); got != "second-12\n" {
		t.Errorf("current = %q", got)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Errorf("no backups expected, stat err = %v", err)
	}
}

func TestRotatingWriterDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	rw, err := NewRotatingWriter(path, RotationConfig{})
	if err != nil {
		t.Fatal(err)
	}
	defer rw.Close()

	line := strings.Repeat("x", 1024) + "\n"
	for range 10 {
		rw.Write([]byte(line))
	}
	if got := readFile(t, path); len(got) != 10*len(line) {
		t.Errorf("file size = %d, want %d", len(got), 10*len(line))
	}
}

func TestRotatingWriterAppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	rw, err := NewRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatal(err)
	}
	rw.Write([]byte("new\n"))
	rw.Close()

	if got := readFile(t, path); got != "old\nnew\n" {
		t.Errorf("contents = %q", got)
	}
}

func TestRotatingWriterClosed(t *testing.T) {
	rw, _ := newTinyWriter(t, 1)
	if err := rw.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if _, err := rw.Write([]byte("x")); err == nil {
		t.Error("Write after Close should fail")
	}
	if err := rw.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
