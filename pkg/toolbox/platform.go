package toolbox

import "runtime"

var platforms = []string{
	"windows", "linux", "android", "bsd", "hp-ux", "aix", "ios", "osx", "solaris",
}

// Platforms lists every label PlatformName can return, apart from "".
func Platforms() []string {
	out := make([]string, len(platforms))
	copy(out, platforms)
	return out
}

// PlatformName returns the operating system the binary was compiled for, or
// "" when it is none of Platforms. It is derived from runtime.GOOS, which is
// fixed at build time, so the answer never changes while the process runs.
// Go has no HP-UX port, so "hp-ux" is never returned by a Go build.
func PlatformName() string {
	return platformLabel(runtime.GOOS)
}

func platformLabel(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "android":
		return "android"
	case "linux":
		return "linux"
	case "freebsd", "netbsd", "openbsd", "dragonfly":
		return "bsd"
	case "aix":
		return "aix"
	case "ios":
		return "ios"
	case "darwin":
		return "osx"
	case "solaris", "illumos":
		return "solaris"
	default:
		return ""
	}
}
