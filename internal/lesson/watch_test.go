package lesson

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/stepthrough/internal/errors"
	"github.com/Iron-Ham/stepthrough/internal/testutil"
)

func waitReload(t *testing.T, ch <-chan Reload) Reload {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
		return Reload{}
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "lesson.yaml", minimalLesson)

	reloads := make(chan Reload, 4)
	w, err := NewWatcher(path, nil, func(r Reload) { reloads <- r })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	t.Run("valid edit", func(t *testing.T) {
		edited := strings.Replace(minimalLesson, "title: Minimal", "title: Edited", 1)
		if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
			t.Fatal(err)
		}
		r := waitReload(t, reloads)
		if r.Err != nil {
			t.Fatalf("reload error = %v", r.Err)
		}
		if r.Content.Title != "Edited" {
			t.Errorf("Title = %q, want Edited", r.Content.Title)
		}
	})

	t.Run("invalid edit reports error", func(t *testing.T) {
		bad := strings.Replace(minimalLesson, "line: 2", "line: 9", 1)
		if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
			t.Fatal(err)
		}
		r := waitReload(t, reloads)
		if !errors.Is(r.Err, errors.ErrInvalidLesson) {
			t.Fatalf("reload error = %v, want ErrInvalidLesson", r.Err)
		}
		if r.Content != nil {
			t.Error("Content should be nil on error")
		}
	})
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "lesson.yaml", minimalLesson)

	reloads := make(chan Reload, 4)
	w, err := NewWatcher(path, nil, func(r Reload) { reloads <- r })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	testutil.WriteFile(t, dir, "other.yaml", "noise")

	select {
	case r := <-reloads:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(4 * reloadDebounce):
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "lesson.yaml", minimalLesson)
	w, err := NewWatcher(path, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	w.Stop()
	w.Stop()
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "lesson.yaml"), nil, nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
