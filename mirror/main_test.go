package mirror

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qdev-tools/aerdev/filesystem"
)

var aerRenames = []Rename{
	{From: "AerDensityMatrix", To: "DensityMatrix"},
	{From: "AerStatevector", To: "Statevector"},
}

func TestTransform(t *testing.T) {
	m := Mirror{Renames: aerRenames}

	input := `class TestAerDensityMatrix(common.QiskitAerTestCase):
    def test_init(self):
        state = AerDensityMatrix(AerStatevector.from_label("0"))
        other = AerDensityMatrix(state)
`

	fromCount := strings.Count(input, "AerDensityMatrix") + strings.Count(input, "AerStatevector")

	out, err := m.Transform([]byte(input))
	require.NoError(t, err)

	output := string(out)
	require.Zero(t, strings.Count(output, "AerDensityMatrix"))
	require.Zero(t, strings.Count(output, "AerStatevector"))
	require.Equal(t, fromCount, strings.Count(output, "DensityMatrix")+strings.Count(output, "Statevector"))

	// Token counts carry over pairwise.
	require.Equal(t, strings.Count(input, "AerDensityMatrix"), strings.Count(output, "DensityMatrix"))
	require.Equal(t, strings.Count(input, "AerStatevector"), strings.Count(output, "Statevector"))
}

func TestTransformNoRenames(t *testing.T) {
	_, err := Mirror{}.Transform([]byte("x"))
	require.ErrorIs(t, err, ErrNoRenames)
}

func TestTransformEmptyFrom(t *testing.T) {
	m := Mirror{Renames: []Rename{{From: "", To: "DensityMatrix"}}}

	_, err := m.Transform([]byte("x"))
	require.Error(t, err)
}

func TestDiffMirroredFile(t *testing.T) {
	tmp := filesystem.MakePath(t.TempDir())

	derived := tmp.Join("test_aer_densitymatrix.py")
	reference := tmp.Join("test_densitymatrix.py")

	require.NoError(t, derived.WriteFile([]byte("state = AerDensityMatrix(AerStatevector([1, 0]))\n"), 0644))
	require.NoError(t, reference.WriteFile([]byte("state = DensityMatrix(Statevector([1, 0]))\n"), 0644))

	m := Mirror{Renames: aerRenames}

	result, err := m.Diff(derived, reference)
	require.NoError(t, err)
	require.Empty(t, result.Diff)

	// The transformed duplicate stays on disk.
	require.Equal(t, filesystem.Path(derived.String()+Suffix), result.Copy)

	data, err := result.Copy.ReadFile()
	require.NoError(t, err)
	require.Equal(t, "state = DensityMatrix(Statevector([1, 0]))\n", string(data))
}

func TestDiffStructuralDrift(t *testing.T) {
	tmp := filesystem.MakePath(t.TempDir())

	derived := tmp.Join("test_aer_densitymatrix.py")
	reference := tmp.Join("test_densitymatrix.py")

	require.NoError(t, derived.WriteFile([]byte("state = AerDensityMatrix([1, 0])\n"), 0644))
	require.NoError(t, reference.WriteFile([]byte("state = DensityMatrix([0, 1])\nextra = True\n"), 0644))

	m := Mirror{Renames: aerRenames}

	result, err := m.Diff(derived, reference)
	require.NoError(t, err)
	require.NotEmpty(t, result.Diff)
	require.Contains(t, result.Diff, "+extra = True")
}

func TestDiffMissingDerived(t *testing.T) {
	tmp := filesystem.MakePath(t.TempDir())

	m := Mirror{Renames: aerRenames}

	_, err := m.Diff(tmp.Join("absent.py"), tmp.Join("also_absent.py"))
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	var buf strings.Builder

	diff := "--- a\n+++ b\n@@ -1 +1 @@\n-old\n+new\n"
	Render(&buf, diff)

	out := buf.String()
	require.Contains(t, out, "-old")
	require.Contains(t, out, "+new")

	buf.Reset()
	Render(&buf, "")
	require.Empty(t, buf.String())
}
