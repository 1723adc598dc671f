package installer

import (
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"

	"github.com/qdev-tools/aerdev/filesystem"
	"github.com/qdev-tools/aerdev/mirror"
)

func TestLoadDefaults(t *testing.T) {
	tmp := filesystem.MakePath(t.TempDir())

	loader := Loader{Manifest: tmp.Join(ManifestName)}

	project, err := loader.Load()
	require.NoError(t, err)

	require.Equal(t, tmp.Basename(), project.Manifest.Name)
	require.Equal(t, tmp, project.Source)
	require.Equal(t, tmp.Join("qiskit_aer"), project.Package)
	require.Equal(t, tmp.Join("build.log"), project.Log)
	require.Equal(t, tmp.Join("hooks"), project.Hooks)
	require.Equal(t, "qiskit/providers/aer", project.Manifest.Provider.Slot)
	require.Len(t, project.Manifest.Sync, 2)
	require.Equal(t, []mirror.Rename{
		{From: "AerDensityMatrix", To: "DensityMatrix"},
		{From: "AerStatevector", To: "Statevector"},
	}, project.Manifest.Mirror.Renames)
}

func TestLoadManifest(t *testing.T) {
	tmp := filesystem.MakePath(t.TempDir())

	manifest := `
name = "aer"
source = "checkout"
package = "qiskit_aer"
log = "logs/build.log"
python = "python3"

[build]
command = ["python3", "setup.py", "bdist_wheel"]

[[sync]]
staging = "_skbuild"
contains = "controller_wrappers"
dest = "qiskit_aer/backends"

[provider]
framework = "qiskit"
slot = "qiskit/providers/aer"

[[mirror.rename]]
from = "AerStatevector"
to = "Statevector"
`

	require.NoError(t, tmp.Join(ManifestName).WriteFile([]byte(manifest), 0644))

	loader := Loader{Manifest: tmp.Join(ManifestName)}

	project, err := loader.Load()
	require.NoError(t, err)

	require.Equal(t, "aer", project.Manifest.Name)
	require.Equal(t, tmp.Join("checkout"), project.Source)
	require.Equal(t, tmp.Join("checkout", "qiskit_aer"), project.Package)
	require.Equal(t, tmp.Join("logs", "build.log"), project.Log)
	require.Equal(t, "python3", project.Manifest.Python)
	require.Equal(t, []string{"python3", "setup.py", "bdist_wheel"}, project.Manifest.Build.Command)
	require.Len(t, project.Manifest.Sync, 1)
	require.Equal(t, "controller_wrappers", project.Manifest.Sync[0].Contains)
	require.Equal(t, []mirror.Rename{{From: "AerStatevector", To: "Statevector"}}, project.Manifest.Mirror.Renames)
}

func TestLoadAbsoluteSource(t *testing.T) {
	tmp := filesystem.MakePath(t.TempDir())
	checkout := filesystem.MakePath(t.TempDir())

	manifest := "source = \"" + checkout.String() + "\"\n"
	require.NoError(t, tmp.Join(ManifestName).WriteFile([]byte(manifest), 0644))

	loader := Loader{Manifest: tmp.Join(ManifestName)}

	project, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, checkout, project.Source)
}

func TestLoadHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.Reset()
	t.Cleanup(homedir.Reset)

	tmp := filesystem.MakePath(t.TempDir())

	manifest := "source = \"~/aer\"\n"
	require.NoError(t, tmp.Join(ManifestName).WriteFile([]byte(manifest), 0644))

	loader := Loader{Manifest: tmp.Join(ManifestName)}

	project, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, filesystem.MakePath(home, "aer"), project.Source)
}

func TestLoadInvalidManifest(t *testing.T) {
	tmp := filesystem.MakePath(t.TempDir())

	require.NoError(t, tmp.Join(ManifestName).WriteFile([]byte("name = [broken"), 0644))

	loader := Loader{Manifest: tmp.Join(ManifestName)}

	_, err := loader.Load()
	require.Error(t, err)
}

func TestSyncRuleSuffix(t *testing.T) {
	require.Equal(t, DefaultSuffix(), SyncRule{}.suffix())
	require.Equal(t, ".pyd", SyncRule{Suffix: ".pyd"}.suffix())
}
