package osutil

import (
	"os"
	"runtime"
)

// GetOSType returns the current operating system identifier
func GetOSType() string {
	return runtime.GOOS
}

// IsWindows returns true when running on Windows
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// IsDevEnvironment returns true when the tool runs from a development
// checkout rather than an installed location
func IsDevEnvironment() bool {
	if os.Getenv("JOURNEY_COMPOSER_DEV") == "true" {
		return true
	}
	if _, err := os.Stat("go.mod"); err == nil {
		return true
	}
	return false
}
