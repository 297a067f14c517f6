package script

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/types"
	"github.com/gobwas/glob"
)

// Discover enumerates the script rule files under dir, recursively.
// Results are sorted lexically by full path, which is the only
// ordering promise rule authors get. Files whose base name matches an
// ignore glob are skipped. A missing directory is not an error: it
// simply means no script rules are installed.
func Discover(dir string, ignore []glob.Glob) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipAll
			}
			log.Warn("cannot read %s: %v", path, err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ruleExt) {
			return nil
		}
		base := filepath.Base(path)
		for _, g := range ignore {
			if g.Match(base) {
				log.Debug("ignoring rule file %s", path)
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, types.WrapError(types.KindIo, err, "cannot scan rules directory %s", dir)
	}

	sort.Strings(paths)
	return paths, nil
}
