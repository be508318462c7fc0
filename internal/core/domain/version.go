package domain

import (
	"fmt"
	"regexp"
	"strconv"

	"go.trai.ch/zerr"
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

// Version is a major.minor.patch triple reported by the external executable.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion extracts the first major.minor.patch triple from arbitrary
// text, typically the stdout of a "--version" invocation. A missing match is
// a soft failure: callers degrade to "unknown version" and continue.
func ParseVersion(text string) (Version, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Version{}, zerr.With(ErrVersionUnknown, "stdout", text)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// AtLeast reports whether v is at least the given version.
func (v Version) AtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

// IsZero reports whether the version is unknown.
func (v Version) IsZero() bool {
	return v == Version{}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
