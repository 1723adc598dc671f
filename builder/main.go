// Package builder invokes the external package's build entry point and
// captures its diagnostics in a log file. A failed build is fatal and leaves
// no guarantee about the staging tree's completeness; the caller surfaces
// the exit status and points the user at the log.
package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/qdev-tools/aerdev/filesystem"
)

var ErrNoBuildCommand = errors.New("builder: no build command configured")

type Builder struct {
	// Dir is the working copy the build command runs in
	Dir filesystem.Path

	// Command is the external build entry point, argv style
	Command []string

	// Log receives the combined stdout and stderr of the build command
	Log filesystem.Path

	// Staging lists the build-output trees removed by Clean
	Staging []filesystem.Path

	// CleanFirst removes the staging trees before building
	CleanFirst bool
}

// Build runs the external build command, teeing all output into the log
// file. The log is created (truncated) even when the build fails, so its
// contents always describe the most recent attempt.
func (b Builder) Build(ctx context.Context) error {
	if len(b.Command) == 0 {
		return ErrNoBuildCommand
	}

	if b.CleanFirst {
		if err := b.Clean(); err != nil {
			return err
		}
	}

	logFile, err := os.Create(b.Log.String())
	if err != nil {
		return err
	}

	defer logFile.Close()

	cmd := exec.CommandContext(ctx, b.Command[0], b.Command[1:]...)
	cmd.Dir = b.Dir.String()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("builder: build failed (see %s): %w", b.Log, err)
	}

	return nil
}

// Clean removes the staging trees, forcing the next build to start from
// scratch. Missing trees are fine.
func (b Builder) Clean() error {
	for _, staging := range b.Staging {
		if err := staging.RemoveAll(); err != nil {
			return err
		}
	}

	return nil
}
