//go:build !unix

package gate

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Handoff runs the given command with inherited stdio and environment and
// exits with the child's exit code. True process replacement is not
// available on this platform, so spawn-and-await is the closest substitute;
// like the unix variant, it only returns on failure to launch.
func Handoff(argv []string) error {
	if len(argv) == 0 {
		return ErrNoCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %q: %w", argv[0], err)
	}
	os.Exit(0)
	return nil
}
