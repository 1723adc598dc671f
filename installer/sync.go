package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qdev-tools/aerdev/filesystem"
)

// SyncResult records the artifacts one rule copied, by filename. Zero
// copies is a normal outcome, not an error.
type SyncResult struct {
	Rule   SyncRule
	Copied []string
}

// Sync runs every configured artifact-sync rule. Each match is copied flat
// into the rule's destination directory, overwriting any previous copy.
// Destination files are never deleted, even when their staged source has
// disappeared since the last run.
func (inst *Installer) Sync(ctx context.Context, options Options) ([]SyncResult, error) {
	results := make([]SyncResult, 0, len(inst.Project.Manifest.Sync))

	for _, rule := range inst.Project.Manifest.Sync {
		result, err := inst.syncRule(rule, options)
		if err != nil {
			return results, err
		}

		results = append(results, result)
	}

	return results, nil
}

func (inst *Installer) syncRule(rule SyncRule, options Options) (SyncResult, error) {
	result := SyncResult{Rule: rule}

	matches, err := inst.matches(rule)
	if err != nil {
		return result, err
	}

	dest := inst.Project.Source.Join(filepath.FromSlash(rule.Dest))

	for _, src := range matches {
		dst := dest.Join(src.Basename())

		if options.DryRun {
			fmt.Fprintf(inst.Out, "would copy %s -> %s\n", src, dst)
			result.Copied = append(result.Copied, src.Basename())
			continue
		}

		if err := filesystem.Copy(src, dst); err != nil {
			return result, err
		}

		result.Copied = append(result.Copied, src.Basename())
	}

	return result, nil
}

// matches walks the rule's staging subpath and collects every regular file
// whose name matches the rule. A missing staging directory yields no
// matches; the build may simply not have produced that subsystem.
func (inst *Installer) matches(rule SyncRule) ([]filesystem.Path, error) {
	staging := inst.Project.Source.Join(filepath.FromSlash(rule.Staging))

	exists, err := staging.Exists()
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, nil
	}

	var found []filesystem.Path

	err = staging.Walk(func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path == "." || !info.Mode().IsRegular() {
			return nil
		}

		if matchArtifact(filepath.Base(path), rule.Contains, rule.suffix()) {
			found = append(found, staging.Join(path))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

func matchArtifact(name, contains, suffix string) bool {
	return strings.Contains(name, contains) && strings.HasSuffix(name, suffix)
}
