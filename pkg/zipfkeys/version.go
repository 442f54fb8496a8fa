package zipfkeys

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// FormatVersion is the version of the workload export layout.
const FormatVersion = "v1.0.0"

// IsCompatibleVersion reports whether a reader at format current can decode
// an export written at format version. The chunk layout only changes with
// the major version, so a newer or older minor release still reads.
func IsCompatibleVersion(version, current string) (bool, error) {
	if !semver.IsValid(version) {
		return false, fmt.Errorf("invalid export version: %s", version)
	}
	if !semver.IsValid(current) {
		return false, fmt.Errorf("invalid reader version: %s", current)
	}

	return semver.Major(version) == semver.Major(current), nil
}

// CompatibilityError wraps ErrIncompatibleVersion with both format versions.
func CompatibilityError(version, current string) error {
	return fmt.Errorf("%w: export version %s, reader requires %s.x.x",
		ErrIncompatibleVersion, version, semver.Major(current))
}
