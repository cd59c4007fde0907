package catalog

import (
	"fmt"
	"strings"

	"slicegen/internal/common"
)

// Profile is the capability level generated code may assume.
type Profile int

const (
	// ProfileUnset means no profile was declared; callers fall back to ProfileStd.
	ProfileUnset Profile = iota
	// ProfileCore allows only language builtins.
	ProfileCore
	// ProfileAlloc adds operations that allocate new buffers.
	ProfileAlloc
	// ProfileStd adds standard-library facilities.
	ProfileStd
)

// DefaultProfile is used when neither the spec file nor the config names one.
const DefaultProfile = ProfileStd

var profileNames = map[Profile]string{
	ProfileCore:  "core",
	ProfileAlloc: "alloc",
	ProfileStd:   "std",
}

// ProfileNames returns the accepted profile names in ascending capability order.
func ProfileNames() []string {
	return []string{"core", "alloc", "std"}
}

// String returns the profile name used in spec files.
func (p Profile) String() string {
	if name, ok := profileNames[p]; ok {
		return name
	}

	if p == ProfileUnset {
		return ""
	}

	return common.UnknownStr
}

// ParseProfile parses a profile name. Aliases "minimal" and "full" are accepted.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ProfileUnset, nil
	case "core", "minimal", "nostd":
		return ProfileCore, nil
	case "alloc", "core+alloc":
		return ProfileAlloc, nil
	case "std", "full":
		return ProfileStd, nil
	default:
		return ProfileUnset, fmt.Errorf("unknown profile %q", s)
	}
}

// OrDefault returns p, or DefaultProfile when p is unset.
func (p Profile) OrDefault() Profile {
	if p == ProfileUnset {
		return DefaultProfile
	}

	return p
}

// AtLeast reports whether p provides every capability of want.
func (p Profile) AtLeast(want Profile) bool {
	return p.OrDefault() >= want
}

// MarshalText implements encoding.TextMarshaler.
func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so profiles can be read
// from flags and the environment.
func (p *Profile) UnmarshalText(text []byte) error {
	v, err := ParseProfile(string(text))
	if err != nil {
		return err
	}

	*p = v

	return nil
}
