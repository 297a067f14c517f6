// Package script loads and runs user-supplied script rules.
//
// This is the only security-critical boundary in the tool: rule files
// are arbitrary user-writable code executed in-process, so every file
// passes the ownership/permission gate in Validator before the engine
// ever sees it.
package script

import (
	"path/filepath"
	"strings"

	"github.com/AliyaRazyapova/theshit/internal/logger"
)

var log = logger.New("script")

// CommonAncestor returns the longest shared path prefix of the given
// paths, component-wise. An empty input has no ancestor. A single path
// yields its parent directory. When the paths share no leading
// component (e.g. two distinct relative trees) there is no ancestor,
// which callers must treat as a configuration failure, not a crash.
func CommonAncestor(paths []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}
	if len(paths) == 1 {
		return filepath.Dir(paths[0]), true
	}

	common := components(paths[0])
	for _, p := range paths[1:] {
		comps := components(p)
		n := 0
		for n < len(common) && n < len(comps) && common[n] == comps[n] {
			n++
		}
		common = common[:n]
		if n == 0 {
			break
		}
	}
	if len(common) == 0 {
		return "", false
	}
	return filepath.Join(common...), true
}

// components splits a cleaned path into its components. The leading
// separator of an absolute path is itself a component, so two absolute
// paths always share at least the root.
func components(path string) []string {
	path = filepath.Clean(path)
	var comps []string

	vol := filepath.VolumeName(path)
	rest := path[len(vol):]
	if strings.HasPrefix(rest, string(filepath.Separator)) {
		comps = append(comps, vol+string(filepath.Separator))
		rest = rest[1:]
	} else if vol != "" {
		comps = append(comps, vol)
	}

	for _, c := range strings.Split(rest, string(filepath.Separator)) {
		if c != "" && c != "." {
			comps = append(comps, c)
		}
	}
	return comps
}

// ModuleName derives the dotted import name for a rule file relative
// to the import root: relative directory segments plus the file stem,
// joined with ".". Returns false (with a warning, never an error) when
// the path is not under the root or has no usable stem.
func ModuleName(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		log.Warn("rule path %q is not under the import root %q", path, root)
		return "", false
	}

	base := filepath.Base(rel)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		log.Warn("rule path %q has no usable file stem", path)
		return "", false
	}

	var segments []string
	if dir := filepath.Dir(rel); dir != "." {
		// Treat both separator styles uniformly.
		dir = strings.ReplaceAll(dir, "\\", "/")
		for _, s := range strings.Split(dir, "/") {
			if s != "" {
				segments = append(segments, s)
			}
		}
	}
	segments = append(segments, stem)
	return strings.Join(segments, "."), true
}
