// Package output decides where a run writes its assets.
//
// An existing "public" directory (the usual static root of a web project)
// is reused as-is. Otherwise a fresh "og-images" directory is created; if
// one is already there the run aborts so earlier output is never merged
// with or overwritten by a new run.
//
// The existence check and the Mkdir are not atomic across processes. Two
// concurrent runs in the same directory can both pass the check; the
// loser's Mkdir then fails with DIRECTORY_EXISTS.
package output

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	ogerrors "github.com/matzehuels/ogcreator/pkg/errors"
)

const (
	// PublicDirName is reused when present.
	PublicDirName = "public"
	// FreshDirName is created when no public directory exists.
	FreshDirName = "og-images"
)

// Dir is the resolved output directory.
type Dir struct {
	Path    string
	Created bool // true when Resolve made the directory
}

// Join returns the path of name inside the directory.
func (d Dir) Join(name string) string {
	return filepath.Join(d.Path, name)
}

// Resolve picks the output directory under cwd, creating og-images when
// needed. It never removes or empties anything.
func Resolve(cwd string) (Dir, error) {
	public := filepath.Join(cwd, PublicDirName)
	if info, err := os.Stat(public); err == nil && info.IsDir() {
		return Dir{Path: public}, nil
	}

	fresh := filepath.Join(cwd, FreshDirName)
	if _, err := os.Lstat(fresh); err == nil {
		return Dir{}, ogerrors.New(ogerrors.ErrCodeDirectoryExists,
			"the directory '%s' already exists. Aborting to avoid overwriting", fresh)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Dir{}, ogerrors.Wrap(ogerrors.ErrCodeIO, err, "stat %s", fresh)
	}

	if err := os.Mkdir(fresh, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Dir{}, ogerrors.New(ogerrors.ErrCodeDirectoryExists,
				"the directory '%s' already exists. Aborting to avoid overwriting", fresh)
		}
		return Dir{}, ogerrors.Wrap(ogerrors.ErrCodeIO, err, "create %s", fresh)
	}
	return Dir{Path: fresh, Created: true}, nil
}
