// Package buildinfo exposes version metadata stamped at build time.
package buildinfo

import "runtime/debug"

// BinaryVersion is set at build time via -ldflags. Defaults to "dev".
var BinaryVersion = "dev"

// GitCommit is the short commit hash set at build time via -ldflags.
var GitCommit = ""

// ModuleVersion returns the module version embedded by the Go toolchain,
// or an empty string when build info is unavailable (e.g. go run).
func ModuleVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return ""
}
