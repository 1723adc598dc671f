package installer

import (
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/qdev-tools/aerdev/filesystem"
	"github.com/qdev-tools/aerdev/mirror"
)

// ManifestName is the manifest file the loader looks for next to the
// working copy.
const ManifestName = "aerdev.toml"

// DefaultSuffix returns the dynamic-library suffix the Python interpreter
// uses for native extension modules on this platform.
func DefaultSuffix() string {
	if runtime.GOOS == "windows" {
		return ".pyd"
	}

	return ".so"
}

// Command is an external program invocation, argv style.
type Command struct {
	Command []string `toml:"command,omitempty"`
}

// SyncRule describes one artifact-sync step: search Staging recursively for
// native extensions whose filename contains Contains and ends with the
// platform suffix, then copy each match into Dest. Staging and Dest are
// slash-separated paths relative to the working copy root.
type SyncRule struct {
	Staging  string `toml:"staging,omitempty"`
	Contains string `toml:"contains,omitempty"`
	Suffix   string `toml:"suffix,omitempty"`
	Dest     string `toml:"dest,omitempty"`
}

func (r SyncRule) suffix() string {
	if r.Suffix != "" {
		return r.Suffix
	}

	return DefaultSuffix()
}

// Provider names the host framework's provider slot that gets replaced with
// a symlink to the working copy. Slot is slash separated and relative to the
// interpreter's site-packages root.
type Provider struct {
	Framework string `toml:"framework,omitempty"`
	Slot      string `toml:"slot,omitempty"`
}

// Mirror configures the test-diff utility.
type Mirror struct {
	Renames []mirror.Rename `toml:"rename,omitempty"`
}

type Manifest struct {
	Name     string     `toml:"name,omitempty"`
	Source   string     `toml:"source,omitempty"`
	Package  string     `toml:"package,omitempty"`
	Log      string     `toml:"log,omitempty"`
	Hooks    string     `toml:"hooks,omitempty"`
	Python   string     `toml:"python,omitempty"`
	Build    Command    `toml:"build,omitempty"`
	Pip      Command    `toml:"pip,omitempty"`
	Sync     []SyncRule `toml:"sync,omitempty"`
	Provider Provider   `toml:"provider,omitempty"`
	Mirror   Mirror     `toml:"mirror,omitempty"`
}

// Project is a loaded manifest with every path resolved to an absolute
// location on disk.
type Project struct {
	Manifest Manifest

	// Root is the directory containing the manifest file
	Root filesystem.Path

	// Source is the working copy of the simulator package
	Source filesystem.Path

	// Package is the importable package directory inside Source. The
	// provider slot symlink points here.
	Package filesystem.Path

	// Log receives the build command's combined output
	Log filesystem.Path

	// Hooks is the directory searched for hook executables
	Hooks filesystem.Path
}

// Mirror returns the configured test-diff utility.
func (p *Project) Mirror() mirror.Mirror {
	return mirror.Mirror{Renames: p.Manifest.Mirror.Renames}
}

type Loader struct {
	// Manifest is the path of the aerdev.toml file. The file may be absent,
	// in which case the defaults below apply unchanged.
	Manifest filesystem.Path
}

func (l Loader) Root() filesystem.Path {
	return l.Manifest.Parent()
}

func (l Loader) DefaultManifest() Manifest {
	return Manifest{
		Name:    l.Root().Basename(),
		Source:  ".",
		Package: "qiskit_aer",
		Log:     "build.log",
		Hooks:   "hooks",
		Python:  "python",
		Build:   Command{Command: []string{"python", "setup.py", "build"}},
		Pip:     Command{Command: []string{"pip", "install", "-e", "."}},
		Sync: []SyncRule{
			{Staging: "_skbuild", Contains: "controller_wrappers", Dest: "qiskit_aer/backends"},
			{Staging: "_skbuild", Contains: "pulse_controller", Dest: "qiskit_aer/pulse"},
		},
		Provider: Provider{Framework: "qiskit", Slot: "qiskit/providers/aer"},
		Mirror: Mirror{
			Renames: []mirror.Rename{
				{From: "AerDensityMatrix", To: "DensityMatrix"},
				{From: "AerStatevector", To: "Statevector"},
			},
		},
	}
}

func (l Loader) Load() (*Project, error) {
	m := l.DefaultManifest()

	exists, err := l.Manifest.Exists()
	if err != nil {
		return nil, err
	}

	if exists {
		f, err := l.Manifest.Open()
		if err != nil {
			return nil, err
		}

		defer f.Close()

		// Decode into a fresh manifest and merge, so a manifest's sync
		// rules replace the defaults instead of accumulating next to them.
		var loaded Manifest
		if err := toml.NewDecoder(f).Decode(&loaded); err != nil {
			return nil, err
		}

		m = l.mergeDefaults(loaded)
	}

	source, err := l.resolve(m.Source)
	if err != nil {
		return nil, err
	}

	log, err := l.resolve(m.Log)
	if err != nil {
		return nil, err
	}

	hooks, err := l.resolve(m.Hooks)
	if err != nil {
		return nil, err
	}

	return &Project{
		Manifest: m,
		Root:     l.Root(),
		Source:   source,
		Package:  source.Join(filepath.FromSlash(m.Package)),
		Log:      log,
		Hooks:    hooks,
	}, nil
}

// mergeDefaults fills every field the manifest left unset.
func (l Loader) mergeDefaults(m Manifest) Manifest {
	d := l.DefaultManifest()

	if m.Name == "" {
		m.Name = d.Name
	}

	if m.Source == "" {
		m.Source = d.Source
	}

	if m.Package == "" {
		m.Package = d.Package
	}

	if m.Log == "" {
		m.Log = d.Log
	}

	if m.Hooks == "" {
		m.Hooks = d.Hooks
	}

	if m.Python == "" {
		m.Python = d.Python
	}

	if len(m.Build.Command) == 0 {
		m.Build = d.Build
	}

	if len(m.Pip.Command) == 0 {
		m.Pip = d.Pip
	}

	if len(m.Sync) == 0 {
		m.Sync = d.Sync
	}

	if m.Provider.Framework == "" {
		m.Provider.Framework = d.Provider.Framework
	}

	if m.Provider.Slot == "" {
		m.Provider.Slot = d.Provider.Slot
	}

	if len(m.Mirror.Renames) == 0 {
		m.Mirror = d.Mirror
	}

	return m
}

// resolve expands a leading ~ and anchors relative paths at the manifest
// directory.
func (l Loader) resolve(name string) (filesystem.Path, error) {
	expanded, err := homedir.Expand(name)
	if err != nil {
		return filesystem.Path(""), err
	}

	if filepath.IsAbs(expanded) {
		return filesystem.Path(expanded), nil
	}

	return l.Root().Join(expanded), nil
}
