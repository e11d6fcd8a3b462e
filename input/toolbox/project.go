package toolbox

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/xigtools/toolbox/core"
	"github.com/xigtools/toolbox/core/field"
)

// ErrNoProject is wrapped by project-discovery failures.
var ErrNoProject = errors.New("toolbox project file not found")

// FindProjectFile locates a Toolbox project file. path may name the
// .prj file itself or a directory containing exactly one .prj file
// (case-insensitive). Anything else is a failure wrapping ErrNoProject.
func FindProjectFile(path string) (string, error) {
	notFound := func() (string, error) {
		return "", core.WrapError(ErrNoProject, core.EMISSING,
			"toolbox project file not found at %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return notFound()
	}
	if !info.IsDir() {
		if strings.HasSuffix(strings.ToLower(path), ".prj") {
			return path, nil
		}
		return notFound()
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return notFound()
	}
	var prj []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".prj") {
			prj = append(prj, e.Name())
		}
	}
	if len(prj) != 1 {
		return notFound()
	}
	return filepath.Join(path, prj[0]), nil
}

// A Project is an opened Toolbox project. The .prj file is SFM data
// itself; its fields are kept as parsed. Alignments is a place for the
// caller's dependent-to-reference marker mapping, typically derived from
// the project's type settings.
type Project struct {
	Path       string
	Settings   []field.Field
	Alignments map[field.Marker]field.Marker
}

// OpenProject locates and parses the project file at path.
func OpenProject(path string) (*Project, error) {
	prj, err := FindProjectFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(prj)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open project file %s", prj)
	}
	defer f.Close()
	settings, err := ReadFields(f)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse project file %s", prj)
	}
	tracer().Infof("opened toolbox project %s (%d settings)", prj, len(settings))
	return &Project{
		Path:       prj,
		Settings:   settings,
		Alignments: make(map[field.Marker]field.Marker),
	}, nil
}
