package script

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AliyaRazyapova/theshit/internal/fileutil"
	"github.com/AliyaRazyapova/theshit/internal/types"
)

//go:embed defaults/*.star
var defaultsFS embed.FS

// InstallDefaults writes the embedded default rules into dir with
// owner-only permissions, so they pass the security gate out of the
// box. Existing files are never overwritten: users may have edited
// them. Returns the number of files written.
func InstallDefaults(dir string) (int, error) {
	if err := fileutil.SecureMkdirAll(dir); err != nil {
		return 0, types.WrapError(types.KindIo, err, "cannot create rules directory %s", dir)
	}

	entries, err := fs.ReadDir(defaultsFS, "defaults")
	if err != nil {
		return 0, types.WrapError(types.KindIo, err, "cannot read embedded default rules")
	}

	written := 0
	for _, entry := range entries {
		dest := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(dest); err == nil {
			log.Debug("default rule %s already present, keeping user copy", dest)
			continue
		}

		data, err := defaultsFS.ReadFile("defaults/" + entry.Name())
		if err != nil {
			return written, types.WrapError(types.KindIo, err, "cannot read embedded rule %s", entry.Name())
		}
		if err := fileutil.SecureWriteFile(dest, data); err != nil {
			return written, types.WrapError(types.KindIo, err, "cannot write default rule %s", dest)
		}
		written++
	}
	return written, nil
}
