package updater

import (
	"fmt"
	"strconv"
	"strings"
)

// Semver is a three-part version number. Pre-release and build
// suffixes are not supported; release tags here are always plain
// "vX.Y.Z".
type Semver struct {
	Major int
	Minor int
	Patch int
}

// ParseSemver parses "major.minor.patch", with or without a leading "v".
func ParseSemver(s string) (Semver, error) {
	parts := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("invalid semver: %q", s)
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Semver{}, fmt.Errorf("invalid semver %q: %w", s, err)
		}
		nums[i] = n
	}
	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// LessThan reports whether v is an older version than other.
func (v Semver) LessThan(other Semver) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}
