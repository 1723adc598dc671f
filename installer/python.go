package installer

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/qdev-tools/aerdev/filesystem"
)

const sitePackagesProgram = "import sysconfig; print(sysconfig.get_paths()['purelib'])"

// Interpreter resolves facts about a Python installation by invoking the
// interpreter itself, so the answer always reflects the active environment.
type Interpreter struct {
	// Python is the interpreter executable, a bare name resolved via PATH
	// or an absolute path into a virtualenv.
	Python string
}

func (i Interpreter) SitePackages(ctx context.Context) (filesystem.Path, error) {
	cmd := exec.CommandContext(ctx, i.Python, "-c", sitePackagesProgram)

	out, err := cmd.Output()
	if err != nil {
		return filesystem.Path(""), fmt.Errorf("installer: resolve site-packages via %s: %w", i.Python, err)
	}

	p := strings.TrimSpace(string(out))
	if !filepath.IsAbs(p) {
		return filesystem.Path(""), fmt.Errorf("installer: interpreter reported non-absolute site-packages %q", p)
	}

	return filesystem.Path(p), nil
}
