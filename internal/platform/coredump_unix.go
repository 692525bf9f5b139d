//go:build unix

package platform

import "golang.org/x/sys/unix"

// DisableCoreDumps stops the kernel from writing process memory, which may
// hold the master password, to a core file.
func DisableCoreDumps() error {
	var rlim unix.Rlimit
	rlim.Cur = 0
	rlim.Max = 0
	return unix.Setrlimit(unix.RLIMIT_CORE, &rlim)
}
