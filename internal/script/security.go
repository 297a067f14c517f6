package script

import (
	"io/fs"
	"os"

	"github.com/AliyaRazyapova/theshit/internal/types"
)

// nonOwnerWriteBits is the permission mask that makes a rule file
// tamperable: write access for group or other.
const nonOwnerWriteBits fs.FileMode = 0o022

// Validator is the security gate every script rule file must pass
// before being imported in-process. Imported rules run with the full
// privileges of this process, so the gate fails closed: any doubt
// about a file's provenance denies it.
type Validator struct {
	euid int
	stat func(string) (os.FileInfo, error)
}

// NewValidator creates a Validator bound to the current effective uid.
func NewValidator() *Validator {
	return &Validator{euid: os.Geteuid(), stat: os.Stat}
}

// Validate returns nil when the file is safe to import. A non-nil
// error is a denial; callers log it and skip the file, never abort
// the batch. The checks, each independently sufficient to deny:
//
//  1. the file must be statable;
//  2. the file owner must be the effective uid of this process
//     (a rule file owned by anyone else must never be imported);
//  3. no group/other write bit may be set (a file others can rewrite
//     is untrusted even when currently owned correctly).
func (v *Validator) Validate(path string) error {
	info, err := v.stat(path)
	if err != nil {
		return types.WrapError(types.KindIo, err, "cannot stat rule file %s", path)
	}

	uid, ok := fileOwner(info)
	if !ok {
		return types.NewError(types.KindSecurity,
			"cannot determine the owner of %s, refusing to import", path)
	}
	if int(uid) != v.euid {
		return types.NewError(types.KindSecurity,
			"rule file %s is owned by uid %d but the process runs as uid %d, refusing to import",
			path, uid, v.euid)
	}

	if perm := info.Mode().Perm(); perm&nonOwnerWriteBits != 0 {
		return types.NewError(types.KindSecurity,
			"rule file %s is writable by non-owners (mode %04o), refusing to import", path, perm)
	}
	return nil
}
