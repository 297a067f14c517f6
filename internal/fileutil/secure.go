// Package fileutil provides owner-only file operations. Script rule
// files must stay owner-writable only or the security gate refuses to
// run them, so everything this tool writes (rules, rc-file hooks) goes
// through these helpers.
//
// On Unix, standard file mode bits (0600, 0700) are enforced.
// On Windows, DACL-based ACLs restrict access to the current user only,
// since Unix permission bits are silently ignored by the Windows kernel.
package fileutil
