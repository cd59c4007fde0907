package catalog

import (
	"fmt"
	"strings"

	"slicegen/internal/common"
)

// Inner is the primitive sequence kind a custom type wraps.
type Inner int

const (
	InnerUnknown Inner = iota
	InnerString        // string
	InnerBytes         // []byte
)

// ParseInner parses a Go type expression naming an inner kind.
func ParseInner(s string) (Inner, error) {
	switch strings.ReplaceAll(strings.TrimSpace(s), " ", "") {
	case "string":
		return InnerString, nil
	case "[]byte", "[]uint8":
		return InnerBytes, nil
	default:
		return InnerUnknown, fmt.Errorf("unsupported inner type %q (want string or []byte)", s)
	}
}

// InnerNames returns the accepted inner type spellings.
func InnerNames() []string {
	return []string{"string", "[]byte"}
}

// String returns the Go type expression for the inner kind.
func (i Inner) String() string {
	switch i {
	case InnerString:
		return "string"
	case InnerBytes:
		return "[]byte"
	default:
		return common.UnknownStr
	}
}

// Zero returns the Go zero-value literal for the inner kind.
func (i Inner) Zero() string {
	if i == InnerBytes {
		return "nil"
	}

	return `""`
}

// IsBytes reports whether the inner kind is a byte slice.
func (i Inner) IsBytes() bool {
	return i == InnerBytes
}
