package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

// ConfigFile is the name of the starter configuration written by Init.
const ConfigFile = "edqm2fhir.yaml"

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init writes the starter configuration and secrets file into root and
// registers the local state in .gitignore. Existing files are kept unless
// force is set.
func (i *Initializer) Init(root string, force bool) (string, error) {
	root = filepath.Clean(root)

	if err := os.MkdirAll(filepath.Join(root, ".edqm2fhir", "logs"), 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "fsworkspace.init",
			Kind: domain.KindExecution,
			Path: root,
			Err:  err,
		}
	}

	if err := ensureGitignore(root); err != nil {
		return "", &domain.OpError{
			Op:   "fsworkspace.gitignore",
			Kind: domain.KindExecution,
			Path: root,
			Err:  err,
		}
	}

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, rel)

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}

		mode := fs.FileMode(0o644)
		if strings.Contains(strings.ToLower(rel), "secrets") {
			mode = 0o600
		}
		return os.WriteFile(dst, b, mode)
	})
	if err != nil {
		return "", &domain.OpError{
			Op:   "fsworkspace.init",
			Kind: domain.KindExecution,
			Path: root,
			Err:  err,
		}
	}
	return filepath.Join(root, ConfigFile), nil
}

func ensureGitignore(root string) error {
	const header = "# edqm2fhir"
	entries := []string{
		".edqm2fhir/",
		"secrets.local.yaml",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
