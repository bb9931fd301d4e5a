// Package editor implements the file-open collaborator for the dashboard:
// it verifies a link target still exists under the vault root and hands it
// to the configured editor command.
package editor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/starford/dagaz/internal/apperr"
)

// Opener opens vault files in an external editor. An empty command makes
// Open an existence check only, which is what the HTTP layer wants: the
// client fetches the note content itself after a successful activation.
type Opener struct {
	root    string
	command string
	logger  *slog.Logger
}

// New creates an opener rooted at the vault directory. command may be empty.
func New(root, command string, logger *slog.Logger) *Opener {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &Opener{root: abs, command: command, logger: logger}
}

// Open verifies the target exists and launches the editor command when one
// is configured. A target that vanished since the last refresh is reported
// as apperr.ErrTargetMissing.
func (o *Opener) Open(path string) error {
	abs, err := o.resolve(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("editor: %s: %w", path, apperr.ErrTargetMissing)
	}
	if o.command == "" {
		o.logger.Debug("editor: target verified", slog.String("path", path))
		return nil
	}

	cmd := exec.Command(o.command, abs)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("editor: launch %s: %w", o.command, err)
	}
	o.logger.Info("editor: opened", slog.String("path", path), slog.String("command", o.command))
	// The editor keeps running on its own; reap it in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}

// resolve joins path against the root and rejects escapes.
func (o *Opener) resolve(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("editor: absolute paths not allowed: %s", path)
	}
	abs := filepath.Join(o.root, cleaned)
	if !strings.HasPrefix(abs, o.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("editor: path escapes vault root: %s", path)
	}
	return abs, nil
}
