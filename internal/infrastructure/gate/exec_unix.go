//go:build unix

package gate

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Handoff replaces the current process with the given command, passing
// through argv and the inherited environment verbatim. On success it never
// returns; the command's exit status becomes this process's exit status.
func Handoff(argv []string) error {
	if len(argv) == 0 {
		return ErrNoCommand
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("command %q not found: %w", argv[0], err)
	}

	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("failed to exec %q: %w", path, err)
	}
	return nil
}
