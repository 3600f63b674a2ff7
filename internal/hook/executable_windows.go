//go:build windows

package hook

import "io/fs"

// Windows has no execute bit; git for Windows runs any hook file that exists.
func isExecutable(fs.FileInfo) bool {
	return true
}
