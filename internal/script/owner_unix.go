//go:build !windows

package script

import (
	"os"
	"syscall"
)

// fileOwner returns the owning uid of a statted file.
func fileOwner(info os.FileInfo) (uint32, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return st.Uid, true
}
