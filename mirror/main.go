// Package mirror checks that a derived test suite is a faithful structural
// copy of the upstream suite it was written against, modulo a fixed set of
// class renames. It duplicates the derived file, rewrites the renamed
// identifiers back to their upstream names and diffs the result against the
// upstream file.
package mirror

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/qdev-tools/aerdev/filesystem"
)

var ErrNoRenames = errors.New("mirror: no rename pairs configured")

// Suffix is appended to the duplicated, rewritten copy of the derived file.
// The copy is left on disk for inspection after the diff is printed.
const Suffix = ".mirror"

// Rename maps one derived identifier back to its upstream spelling. The
// substitution is global and case sensitive.
type Rename struct {
	From string `toml:"from,omitempty"`
	To   string `toml:"to,omitempty"`
}

type Mirror struct {
	Renames []Rename
}

// Replacer builds the identifier substitution. Every From token must be
// non-empty; replacements apply in configuration order, leftmost match
// first.
func (m Mirror) Replacer() (*strings.Replacer, error) {
	if len(m.Renames) == 0 {
		return nil, ErrNoRenames
	}

	pairs := make([]string, 0, len(m.Renames)*2)
	for _, rename := range m.Renames {
		if rename.From == "" {
			return nil, fmt.Errorf("mirror: empty identifier in rename to %q", rename.To)
		}

		pairs = append(pairs, rename.From, rename.To)
	}

	return strings.NewReplacer(pairs...), nil
}

// Transform applies the renames to data.
func (m Mirror) Transform(data []byte) ([]byte, error) {
	replacer, err := m.Replacer()
	if err != nil {
		return nil, err
	}

	return []byte(replacer.Replace(string(data))), nil
}

// Result is a completed comparison.
type Result struct {
	// Copy is the transformed duplicate of the derived file
	Copy filesystem.Path

	// Diff is the unified diff between Copy and the reference file. Empty
	// means the derived suite mirrors the upstream one exactly.
	Diff string
}

// Diff duplicates the derived file next to itself with Suffix appended,
// rewrites the identifiers and returns the unified diff against reference.
func (m Mirror) Diff(derived, reference filesystem.Path) (*Result, error) {
	data, err := derived.ReadFile()
	if err != nil {
		return nil, err
	}

	transformed, err := m.Transform(data)
	if err != nil {
		return nil, err
	}

	copyPath := filesystem.Path(derived.String() + Suffix)
	if err := copyPath.WriteFile(transformed, 0644); err != nil {
		return nil, err
	}

	refData, err := reference.ReadFile()
	if err != nil {
		return nil, err
	}

	diff := udiff.Unified(copyPath.Basename(), reference.Basename(), string(transformed), string(refData))

	return &Result{Copy: copyPath, Diff: diff}, nil
}

// Render writes the diff with per-line coloring: additions green, deletions
// red, hunk headers cyan. color honors NO_COLOR and non-terminal output by
// itself.
func Render(w io.Writer, diff string) {
	if diff == "" {
		return
	}

	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			hunk.Fprintln(w, line)
		case strings.HasPrefix(line, "+"):
			add.Fprintln(w, line)
		case strings.HasPrefix(line, "-"):
			del.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
}
