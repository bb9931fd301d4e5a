package editor

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/dagaz/internal/apperr"
)

func testOpener(t *testing.T) (string, *Opener) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dir, New(dir, "", logger)
}

func TestOpen_Exists(t *testing.T) {
	dir, o := testOpener(t)
	if err := os.WriteFile(filepath.Join(dir, "note.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := o.Open("note.md"); err != nil {
		t.Errorf("Open: %v", err)
	}
}

func TestOpen_TargetMissing(t *testing.T) {
	_, o := testOpener(t)
	err := o.Open("gone.md")
	if !errors.Is(err, apperr.ErrTargetMissing) {
		t.Errorf("err = %v, want ErrTargetMissing", err)
	}
}

func TestOpen_TraversalBlocked(t *testing.T) {
	_, o := testOpener(t)
	for _, p := range []string{"../escape.md", "/etc/passwd"} {
		if err := o.Open(p); err == nil {
			t.Errorf("expected error for %q", p)
		}
	}
}
