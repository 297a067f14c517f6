package shell

import (
	"os"

	"github.com/AliyaRazyapova/theshit/internal/logger"
	"github.com/AliyaRazyapova/theshit/internal/types"
	"github.com/shirou/gopsutil/v4/process"
)

var log = logger.New("shell")

// Inspector enumerates parent links and executable names in the live
// process table. It is a port so tests can substitute a fake table.
type Inspector interface {
	// ParentPID returns the parent pid of pid, or false when the
	// process is gone or has no parent.
	ParentPID(pid int32) (int32, bool)
	// ExeName returns the executable base name of pid, or false when
	// the process is gone or unreadable.
	ExeName(pid int32) (string, bool)
}

// processTable is the gopsutil-backed Inspector.
type processTable struct{}

func (processTable) ParentPID(pid int32) (int32, bool) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return 0, false
	}
	ppid, err := p.Ppid()
	if err != nil {
		return 0, false
	}
	return ppid, true
}

func (processTable) ExeName(pid int32) (string, bool) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", false
	}
	name, err := p.Name()
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// FindInAncestry walks parent links upward from startPID and returns
// the first process whose executable name is a known shell. The walk
// terminates on a missing parent or the root sentinel (pid 0), so a
// malformed process table cannot loop it forever.
func FindInAncestry(insp Inspector, startPID int32) (Shell, bool) {
	current := startPID
	for {
		if name, ok := insp.ExeName(current); ok {
			if sh, err := Parse(name); err == nil {
				return sh, true
			}
		}

		parent, ok := insp.ParentPID(current)
		if !ok || parent == 0 {
			return "", false
		}
		current = parent
	}
}

// Current resolves the invoking shell. An explicit identifier (config
// override or the hook's SH_SHELL export) wins; otherwise the process
// ancestry is walked. No shell at all is a configuration error: the
// pipeline cannot run without an alias table source.
func Current(explicit string) (Shell, error) {
	if explicit != "" {
		sh, err := Parse(explicit)
		if err == nil {
			return sh, nil
		}
		log.Warn("ignoring unrecognized shell identifier %q", explicit)
	}

	if sh, ok := FindInAncestry(processTable{}, int32(os.Getpid())); ok {
		return sh, nil
	}
	return "", types.NewError(types.KindConfig, "could not determine the current shell")
}
