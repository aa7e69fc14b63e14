package common

import (
	"fmt"
	"strings"
)

// Version is set via ldflags at build time:
// -ldflags "-X github.com/Alia5/resxext/internal/codegen/common.Version=x.y.z"
var Version = ""

// DevVersion is reported by builds without a stamped Version.
const DevVersion = "0.0.1-dev"

// GetVersion returns the stamped version without a leading "v".
func GetVersion() (string, error) {
	if Version == "" {
		return DevVersion, nil
	}

	version := strings.TrimPrefix(Version, "v")
	baseVersion := strings.SplitN(version, "-", 2)[0]
	if !strings.Contains(baseVersion, ".") {
		return "", fmt.Errorf("invalid version format: %s (expected x.y.z)", Version)
	}
	return version, nil
}
