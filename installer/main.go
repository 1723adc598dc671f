package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/qdev-tools/aerdev/filesystem"
)

var (
	ErrDeclined        = errors.New("installer: provider relink declined")
	ErrSlotIsDirectory = errors.New("installer: provider slot is not a symlink")
	ErrNotLinked       = errors.New("installer: provider slot is not linked")
)

// Hook names looked up in the project's hooks directory. Missing hooks are
// skipped; a present hook that fails aborts the pipeline.
const (
	HookBeforeInstall = "before_install"
	HookAfterInstall  = "after_install"
	HookBeforeLink    = "before_link"
	HookAfterLink     = "after_link"
)

// SiteResolver reports the interpreter's site-packages root. It is resolved
// at run time, never cached across runs.
type SiteResolver interface {
	SitePackages(ctx context.Context) (filesystem.Path, error)
}

// Runner executes an external command inside dir, streaming its combined
// output wherever the implementation chooses.
type Runner interface {
	Run(ctx context.Context, dir filesystem.Path, argv []string) error
}

// ExecRunner runs commands with os/exec, writing their output to Out.
type ExecRunner struct {
	Out io.Writer
}

func (r ExecRunner) Run(ctx context.Context, dir filesystem.Path, argv []string) error {
	if len(argv) == 0 {
		return errors.New("installer: empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir.String()
	cmd.Stdout = r.Out
	cmd.Stderr = r.Out
	return cmd.Run()
}

// Options control a single pipeline invocation.
type Options struct {
	// DryRun prints the planned actions without touching the filesystem.
	// Hooks do not run on a dry run.
	DryRun bool

	// SkipPip skips the editable install and goes straight to artifact sync
	// and relinking. Useful when iterating on native code only.
	SkipPip bool

	// Confirm gates the removal of a real directory occupying the provider
	// slot. A nil Confirm removes it without asking.
	Confirm func(prompt string) (bool, error)
}

type Installer struct {
	Project *Project
	Site    SiteResolver
	Runner  Runner
	Out     io.Writer
}

func New(project *Project) *Installer {
	return &Installer{
		Project: project,
		Site:    Interpreter{Python: project.Manifest.Python},
		Runner:  ExecRunner{Out: os.Stdout},
		Out:     os.Stdout,
	}
}

// Install runs the full pipeline in order: editable install, artifact sync
// for every rule, then the provider relink. The pipeline stops at the first
// failing step; there is no rollback of earlier steps.
func (inst *Installer) Install(ctx context.Context, options Options) error {
	if !options.DryRun {
		if err := inst.RunHookIfExists(ctx, HookBeforeInstall, ""); err != nil {
			return err
		}
	}

	if !options.SkipPip {
		if options.DryRun {
			fmt.Fprintf(inst.Out, "would run %v in %s\n", inst.Project.Manifest.Pip.Command, inst.Project.Source)
		} else if err := inst.Runner.Run(ctx, inst.Project.Source, inst.Project.Manifest.Pip.Command); err != nil {
			return fmt.Errorf("installer: editable install: %w", err)
		}
	}

	results, err := inst.Sync(ctx, options)
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Fprintf(inst.Out, "%s -> %s: %d artifact(s)\n", result.Rule.Staging, result.Rule.Dest, len(result.Copied))
	}

	if err := inst.Relink(ctx, options); err != nil {
		return err
	}

	if !options.DryRun {
		if err := inst.RunHookIfExists(ctx, HookAfterInstall, ""); err != nil {
			return err
		}
	}

	return nil
}

// Relink replaces whatever occupies the provider slot under site-packages
// with a symlink to the working-copy package directory. A missing slot is
// fine; the symlink target is not validated and may dangle.
func (inst *Installer) Relink(ctx context.Context, options Options) error {
	site, err := inst.Site.SitePackages(ctx)
	if err != nil {
		return err
	}

	slot := site.Join(filepath.FromSlash(inst.Project.Manifest.Provider.Slot))

	if !options.DryRun {
		if err := inst.RunHookIfExists(ctx, HookBeforeLink, site); err != nil {
			return err
		}
	}

	isDir, err := slot.IsDir()
	if err != nil {
		return err
	}

	if isDir && options.Confirm != nil && !options.DryRun {
		ok, err := options.Confirm(fmt.Sprintf("Remove existing directory %s?", slot))
		if err != nil {
			return err
		}

		if !ok {
			return ErrDeclined
		}
	}

	if options.DryRun {
		fmt.Fprintf(inst.Out, "would link %s -> %s\n", slot, inst.Project.Package)
		return nil
	}

	// Remove must complete before the symlink is created so the slot never
	// holds both at once. RemoveAll is a no-op on a missing slot and removes
	// only the link itself when the slot is already a symlink.
	if err := slot.RemoveAll(); err != nil {
		return err
	}

	if err := slot.Parent().MkdirAll(0755); err != nil {
		return err
	}

	if err := slot.Symlink(inst.Project.Package); err != nil {
		return err
	}

	return inst.RunHookIfExists(ctx, HookAfterLink, site)
}

// Unlink removes the provider slot symlink. It refuses to remove anything
// that is not a symlink, so a real installation is never deleted by it.
func (inst *Installer) Unlink(ctx context.Context) error {
	site, err := inst.Site.SitePackages(ctx)
	if err != nil {
		return err
	}

	slot := site.Join(filepath.FromSlash(inst.Project.Manifest.Provider.Slot))

	exists, err := slot.Exists()
	if err != nil {
		return err
	}

	if !exists {
		return ErrNotLinked
	}

	linked, err := slot.IsSymlink()
	if err != nil {
		return err
	}

	if !linked {
		return ErrSlotIsDirectory
	}

	return slot.Remove()
}

// Status reports the provider slot state and, per sync rule, which staged
// artifacts exist and which of them have a copy at the destination.
type Status struct {
	Site    filesystem.Path
	Slot    filesystem.Path
	Linked  bool
	Target  filesystem.Path
	Current bool
	Rules   []RuleStatus
}

type RuleStatus struct {
	Rule   SyncRule
	Staged []string
	Synced []string
}

func (inst *Installer) Status(ctx context.Context) (*Status, error) {
	site, err := inst.Site.SitePackages(ctx)
	if err != nil {
		return nil, err
	}

	slot := site.Join(filepath.FromSlash(inst.Project.Manifest.Provider.Slot))

	status := &Status{
		Site: site,
		Slot: slot,
	}

	linked, err := slot.IsSymlink()
	if err != nil {
		return nil, err
	}

	if linked {
		target, err := slot.Readlink()
		if err != nil {
			return nil, err
		}

		status.Linked = true
		status.Target = target
		status.Current = target == inst.Project.Package
	}

	for _, rule := range inst.Project.Manifest.Sync {
		matches, err := inst.matches(rule)
		if err != nil {
			return nil, err
		}

		ruleStatus := RuleStatus{Rule: rule}
		dest := inst.Project.Source.Join(filepath.FromSlash(rule.Dest))

		for _, match := range matches {
			name := match.Basename()
			ruleStatus.Staged = append(ruleStatus.Staged, name)

			exists, err := dest.Join(name).Exists()
			if err != nil {
				return nil, err
			}

			if exists {
				ruleStatus.Synced = append(ruleStatus.Synced, name)
			}
		}

		status.Rules = append(status.Rules, ruleStatus)
	}

	return status, nil
}

// RunHookIfExists runs the named hook executable from the project's hooks
// directory. site may be empty for hooks that run before site-packages has
// been resolved.
func (inst *Installer) RunHookIfExists(ctx context.Context, name string, site filesystem.Path) error {
	executable := inst.Project.Hooks.Join(name)

	exists, err := executable.Exists()
	if err != nil {
		return err
	}

	if !exists {
		return nil
	}

	cmd := exec.CommandContext(ctx, executable.String())
	cmd.Dir = inst.Project.Source.String()
	cmd.Stdout = inst.Out
	cmd.Stderr = inst.Out
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("AERDEV_SOURCE=%s", inst.Project.Source),
		fmt.Sprintf("AERDEV_PACKAGE=%s", inst.Project.Package),
		fmt.Sprintf("AERDEV_SITE_PACKAGES=%s", site),
	)
	return cmd.Run()
}
