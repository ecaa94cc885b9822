// Package reveal shows a written file in the platform's file manager.
package reveal

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Command builds the file manager invocation for path on the current OS.
func Command(path string) *exec.Cmd {
	return commandFor(runtime.GOOS, path)
}

func commandFor(goos, path string) *exec.Cmd {
	switch goos {
	case "windows":
		// The comma after /select is part of the switch.
		return exec.Command("explorer", "/select,", path)
	case "darwin":
		return exec.Command("open", "-R", path)
	default:
		return exec.Command("xdg-open", filepath.Dir(path))
	}
}

// Reveal starts the file manager without waiting for it.
func Reveal(path string) error {
	if err := Command(path).Start(); err != nil {
		return fmt.Errorf("failed to open file in file manager: %w", err)
	}
	return nil
}
