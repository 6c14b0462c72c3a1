package lint

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Version is a Swift language version such as 5.9 or 5.10.1.
type Version struct {
	Major, Minor, Patch int
}

// DefaultSwiftVersion is assumed when the configuration does not name one.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultSwiftVersion = Version{Major: 6}

// ParseVersion parses "5", "5.9" or "5.10.1".
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid swift version %q", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid swift version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// IsZero reports whether v is unset.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Compare orders versions component-wise.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, other.Patch)
}

func (v Version) String() string {
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
