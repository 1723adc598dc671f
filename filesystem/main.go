// Package filesystem provides a small absolute-path type and the file
// operations the install pipeline performs on it. Every path handled by the
// tool is absolute; relative inputs are resolved by the callers before they
// reach this package.
package filesystem

import (
	"io"
	"os"
	"path/filepath"
)

// Copy copies the regular file at src to dst, creating any missing parent
// directories. The destination is truncated if it exists and inherits the
// source file's mode.
func Copy(src, dst Path) error {
	info, err := os.Stat(src.String())
	if err != nil {
		return err
	}

	if err := dst.Parent().MkdirAll(0755); err != nil {
		return err
	}

	in, err := os.Open(src.String())
	if err != nil {
		return err
	}

	defer in.Close()

	out, err := os.OpenFile(dst.String(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// Abs resolves name against the current working directory and returns it as
// a Path.
func Abs(name string) (Path, error) {
	p, err := filepath.Abs(name)
	if err != nil {
		return Path(""), err
	}

	return Path(p), nil
}
